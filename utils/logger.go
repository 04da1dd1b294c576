package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger логгер с уровнями поверх стандартного log
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	file        *os.File
	isVerbose   bool
}

// NewLogger создает логгер. Если указан файл, сообщения дублируются в него.
func NewLogger(verbose bool, fileName string) (*Logger, error) {
	var out io.Writer = os.Stdout
	var file *os.File

	if fileName != "" {
		f, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			return nil, fmt.Errorf("не удалось открыть или создать файл лога: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	return newLogger(out, file, verbose), nil
}

// NewWriterLogger создает логгер, пишущий в произвольный io.Writer
func NewWriterLogger(out io.Writer, verbose bool) *Logger {
	return newLogger(out, nil, verbose)
}

func newLogger(out io.Writer, file *os.File, verbose bool) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	return &Logger{
		infoLogger:  log.New(out, "INFO: ", flags),
		warnLogger:  log.New(out, "WARN: ", flags),
		errorLogger: log.New(out, "ERROR: ", flags),
		debugLogger: log.New(out, "DEBUG: ", flags),
		file:        file,
		isVerbose:   verbose,
	}
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLogger.Println(fmt.Sprintf(format, v...))
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.warnLogger.Println(fmt.Sprintf(format, v...))
}

// Error логирует сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLogger.Println(fmt.Sprintf(format, v...))
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *Logger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	l.debugLogger.Println(fmt.Sprintf(format, v...))
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
