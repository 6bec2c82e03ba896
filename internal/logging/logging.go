package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 日志初始化参数
type Options struct {
	Verbose bool
	Dir     string // 为空时只输出到 stderr
	Console io.Writer
}

// Init 初始化全局 logger：控制台 + 滚动文件
func Init(opts Options) {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := opts.Console
	if out == nil {
		out = os.Stderr
	}

	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	writers := []io.Writer{consoleWriter}
	if opts.Dir != "" {
		if fileWriter, err := newFileWriter(opts.Dir); err != nil {
			fmt.Fprintf(os.Stderr, "日志目录不可用，仅输出到控制台: %v\n", err)
		} else {
			writers = append(writers, fileWriter)
		}
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()
}

func newFileWriter(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("log directory %q is not writable: %w", dir, err)
	}
	_ = os.Remove(testFile)

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, "fteapp.log"),
		MaxSize:    16, // MB
		MaxBackups: 8,
		MaxAge:     90, // 天
		Compress:   true,
	}, nil
}
