package logger

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

// LogConfig contém a configuração de logging
type LogConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr ou caminho de arquivo
}

// DefaultConfig retorna a configuração padrão de logging
func DefaultConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	}
}

// ZeroLogger implementa Logger sobre o zerolog
type ZeroLogger struct {
	log zerolog.Logger
}

// Setup cria um Logger a partir da configuração
func Setup(config LogConfig) (Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return nil, err
	}

	var output io.Writer
	switch config.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, err
		}
		output = file
	}

	if strings.ToLower(config.Format) != "json" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return New(output, level), nil
}

// New cria um Logger escrevendo em w a partir do nível informado
func New(w io.Writer, level zerolog.Level) Logger {
	return &ZeroLogger{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// NewLogger cria um Logger com a configuração padrão
func NewLogger() Logger {
	l, err := Setup(DefaultConfig())
	if err != nil {
		return New(os.Stdout, zerolog.InfoLevel)
	}
	return l
}

// Nop retorna um Logger que descarta tudo (útil em testes)
func Nop() Logger {
	return &ZeroLogger{log: zerolog.Nop()}
}

// With retorna um Logger com campos fixos
func (l *ZeroLogger) With(keysAndValues ...interface{}) Logger {
	return &ZeroLogger{log: l.log.With().Fields(fields(keysAndValues)).Logger()}
}

// Info registra uma mensagem de informação
func (l *ZeroLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(fields(keysAndValues)).Msg(msg)
}

// Error registra uma mensagem de erro
func (l *ZeroLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(fields(keysAndValues)).Msg(msg)
}

// Debug registra uma mensagem de debug
func (l *ZeroLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(fields(keysAndValues)).Msg(msg)
}

// Warn registra uma mensagem de aviso
func (l *ZeroLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(fields(keysAndValues)).Msg(msg)
}

// fields converte pares chave/valor em um map; chaves inválidas viram "arg<N>"
func fields(keysAndValues []interface{}) map[string]interface{} {
	if len(keysAndValues) == 0 {
		return nil
	}
	m := make(map[string]interface{}, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "arg" + strconv.Itoa(i)
		}
		var value interface{}
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		if err, isErr := value.(error); isErr {
			value = err.Error()
		}
		m[key] = value
	}
	return m
}
