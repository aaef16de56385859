package logging

// Logger is the structured logger passed around the rotation tools. Every message carries
// key/value pairs in the style of zap's SugaredLogger *w methods.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	// Fatalw logs at error level, ignoring the logger's level, then exits with status 1.
	Fatalw(msg string, keysAndValues ...interface{})

	// Name is the dotted name of the logger, e.g. "rotation.efficiency".
	Name() string
	SetLevel(level Level)
	GetLevel() Level
	// Sublogger returns a child logger that shares the appenders of its parent.
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	Sync() error
}
