// Package logging fornece o log estruturado e colorido usado pelo cliente,
// pelos binários e pela integração com o resty.
//
// INFO/SUCCESS vão para stdout e WARN/ERROR/DEBUG para stderr (convenção Unix),
// a menos que SetOutput direcione tudo para um único destino.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex

	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	successOut   io.Writer = os.Stdout
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(levelStyles())
	return l
}

// levelStyles: DEBUG roxo, INFO azul, WARN amarelo, ERROR vermelho.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBUG").Foreground(lipgloss.Color("#7F6DFF"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INFO").Foreground(lipgloss.Color("#42E7FF"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Foreground(lipgloss.Color("#FFE763"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERROR").Foreground(lipgloss.Color("#FF4473"))
	return styles
}

func loggers() (*log.Logger, *log.Logger) {
	mu.RLock()
	defer mu.RUnlock()
	return stdoutLogger, stderrLogger
}

func Info(format string, v ...any) {
	out, _ := loggers()
	out.Info(fmt.Sprintf(format, v...))
}

func Warn(format string, v ...any) {
	_, errOut := loggers()
	errOut.Warn(fmt.Sprintf(format, v...))
}

func Error(format string, v ...any) {
	_, errOut := loggers()
	errOut.Error(fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) {
	_, errOut := loggers()
	errOut.Debug(fmt.Sprintf(format, v...))
}

// Success usa o nível INFO com o rótulo SUCCESS em verde; respeita o filtro de INFO.
func Success(format string, v ...any) {
	mu.RLock()
	level := stdoutLogger.GetLevel()
	w := successOut
	mu.RUnlock()

	if level > log.InfoLevel {
		return
	}

	styles := levelStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("SUCCESS").Foreground(lipgloss.Color("#60F281"))

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(styles)
	l.Info(fmt.Sprintf(format, v...))
}

// ParseLevel aceita DEBUG, INFO, WARN e ERROR; qualquer outro valor vira INFO.
func ParseLevel(level string) log.Level {
	switch level {
	case "DEBUG":
		return log.DebugLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func SetLevel(level string) {
	lvl := ParseLevel(level)

	mu.Lock()
	defer mu.Unlock()
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
}

// SetOutput envia todos os níveis para w. Com w == nil a saída é suprimida.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		stdoutLogger.SetLevel(log.FatalLevel + 1)
		stderrLogger.SetLevel(log.FatalLevel + 1)
		return
	}

	lvl := stdoutLogger.GetLevel()
	stdoutLogger = newLogger(w)
	stderrLogger = newLogger(w)
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
	successOut = w
}

// RestoreOutput volta para stdout/stderr em nível INFO.
func RestoreOutput() {
	mu.Lock()
	defer mu.Unlock()

	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	successOut = os.Stdout
}
