package logger

// Logger is the structured logging contract used across the application.
// Components tag every event with their own name so the filter pipeline,
// capture loop and viewer can be told apart in interleaved output.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// Nop discards everything. Useful for tests and benchmarks.
type Nop struct{}

func (Nop) Debug(string, string, map[string]interface{})  {}
func (Nop) Info(string, string, map[string]interface{})   {}
func (Nop) Warning(string, string, map[string]interface{}) {}
func (Nop) Error(string, error, map[string]interface{})   {}
