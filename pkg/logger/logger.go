// Package logger construye el logger zerolog de la aplicación.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string // development -> consola legible; otro -> JSON
	Level   string // trace, debug, info, warn, error
	Service string // se agrega como campo "service" a cada línea
	Out     io.Writer
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger y lo instala como global (log.Logger) y como
// zerolog.DefaultContextLogger, que es lo que devuelve zerolog.Ctx sin logger en el contexto.
func New(cfg Config) *Logger {
	w := cfg.Out
	if w == nil {
		w = os.Stdout
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zc := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		zc = zc.Str("service", cfg.Service)
	}
	zl := zc.Logger()

	log.Logger = zl
	zerolog.DefaultContextLogger = &zl

	return &Logger{zl: zl}
}

// ParseLevel traduce el nombre del nivel sin distinguir mayúsculas; vacío o desconocido es info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// WithContext adjunta el logger a ctx para que zerolog.Ctx(ctx) lo recupere.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zl.WithContext(ctx)
}

// Zerolog devuelve el logger interno por si se necesita la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
