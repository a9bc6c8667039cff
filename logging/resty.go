package logging

// RestyLogger implementa resty.Logger e encaminha os logs internos do resty.
type RestyLogger struct{}

func (RestyLogger) Errorf(format string, v ...any) { Error("(resty) "+format, v...) }
func (RestyLogger) Warnf(format string, v ...any)  { Warn("(resty) "+format, v...) }
func (RestyLogger) Debugf(format string, v ...any) { Debug("(resty) "+format, v...) }
