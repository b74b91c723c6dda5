package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger envuelve zap para que el resto del código dependa de una
// interfaz chica y no del SDK.
type Logger struct {
	zap *zap.Logger
}

// NewLogger construye un logger de producción con el nivel pedido.
func NewLogger(level string) (*Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = atomicLevel

	zapLogger, err := config.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}

	return &Logger{zap: zapLogger}, nil
}

// Debug loguea en nivel debug.
func (logger *Logger) Debug(msg string, fields ...zap.Field) {
	logger.writer().Debug(msg, fields...)
}

// Info loguea en nivel info.
func (logger *Logger) Info(msg string, fields ...zap.Field) {
	logger.writer().Info(msg, fields...)
}

// Warn loguea en nivel warn.
func (logger *Logger) Warn(msg string, fields ...zapcore.Field) {
	logger.writer().Warn(msg, fields...)
}

// Error loguea en nivel error.
func (logger *Logger) Error(msg string, fields ...zap.Field) {
	logger.writer().Error(msg, fields...)
}

// Sync vuelca los buffers pendientes; se llama al apagar el proceso.
func (logger *Logger) Sync() error {
	if logger.zap == nil {
		return nil
	}
	return logger.zap.Sync()
}

// writer devuelve un no-op si el logger no fue inicializado,
// así el valor cero no paniquea.
func (logger *Logger) writer() *zap.Logger {
	if logger.zap == nil {
		return zap.NewNop()
	}
	return logger.zap
}
