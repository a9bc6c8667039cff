package logging

import (
	"strings"
)

// LevelWriter é um io.Writer que registra cada linha recebida num nível fixo.
// Serve para plugar bibliotecas que só aceitam io.Writer (ex.: gin).
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter aceita DEBUG, INFO, WARN e ERROR; outros níveis viram INFO.
func NewLevelWriter(level, prefix string) *LevelWriter {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if w.prefix != "" {
			line = w.prefix + ": " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", line)
		case "WARN":
			Warn("%s", line)
		case "ERROR":
			Error("%s", line)
		default:
			Info("%s", line)
		}
	}
	return len(p), nil
}
