package adapter

// Logger is the key/value logging surface of the Mattermost plugin API.
// plugin.API satisfies it.
type Logger interface {
	LogDebug(msg string, keyValuePairs ...interface{})
	LogInfo(msg string, keyValuePairs ...interface{})
	LogWarn(msg string, keyValuePairs ...interface{})
	LogError(msg string, keyValuePairs ...interface{})
}

type nopLogger struct{}

func (nopLogger) LogDebug(string, ...interface{}) {}
func (nopLogger) LogInfo(string, ...interface{})  {}
func (nopLogger) LogWarn(string, ...interface{})  {}
func (nopLogger) LogError(string, ...interface{}) {}
