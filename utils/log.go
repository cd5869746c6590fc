package utils

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
	logruswrapper "github.com/topfreegames/pitaya/v3/pkg/logger/logrus"
)

const (
	logMaxAge   = 7 * 24 * time.Hour
	logRotation = 24 * time.Hour
)

type Formatter struct{}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format(time.DateTime)
	level := strings.ToLower(entry.Level.String())

	var fileName, funcName string
	var line int
	if entry.Caller != nil {
		fileName = filepath.Base(entry.Caller.File)
		line = entry.Caller.Line
		funcName = entry.Caller.Function[strings.LastIndex(entry.Caller.Function, ".")+1:]
	}

	var fields strings.Builder
	for _, k := range slices.Sorted(maps.Keys(entry.Data)) {
		fmt.Fprintf(&fields, " %s=%v", k, entry.Data[k])
	}

	// 格式化日志
	logMessage := fmt.Sprintf("%s [%s] %s:%d %s %s%s\n", timestamp, level, fileName, line, funcName, entry.Message, fields.String())

	return []byte(logMessage), nil
}

// NewLogrus 按日期轮转写入dir的logrus日志
func NewLogrus(level logrus.Level, dir string) (*logrus.Logger, error) {
	writer, err := getWriter(dir)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(writer)
	l.SetReportCaller(true)
	l.Formatter = &Formatter{}
	l.SetLevel(level)
	return l, nil
}

// Setup 解析日志级别，替换pitaya的全局logger，返回供牌局使用的logrus
func Setup(level, dir string) (*logrus.Logger, error) {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l, err := NewLogrus(lv, dir)
	if err != nil {
		return nil, err
	}
	logger.SetLogger(logruswrapper.NewWithFieldLogger(l))
	return l, nil
}

func getWriter(dir string) (*SafeRotateLogs, error) {
	// 获取程序名
	programName := filepath.Base(os.Args[0])

	logFile := filepath.Join(dir, fmt.Sprintf("%s-%%Y%%m%%d.log", programName))
	// 确保日志目录存在
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}

	writer, err := newRotateLogs(logFile)
	if err != nil {
		return nil, err
	}
	return &SafeRotateLogs{
		RotateLogs: writer,
		logPattern: logFile,
	}, nil
}

func newRotateLogs(pattern string) (*rotatelogs.RotateLogs, error) {
	return rotatelogs.New(
		pattern,
		rotatelogs.WithMaxAge(logMaxAge),
		rotatelogs.WithRotationTime(logRotation),
	)
}

// SafeRotateLogs 日志文件被删除后重新创建
type SafeRotateLogs struct {
	*rotatelogs.RotateLogs
	logPattern string
}

func (s *SafeRotateLogs) Write(p []byte) (n int, err error) {
	currentLogFile := s.RotateLogs.CurrentFileName()

	if _, err := os.Stat(currentLogFile); os.IsNotExist(err) {
		writer, err := newRotateLogs(s.logPattern)
		if err != nil {
			return 0, fmt.Errorf("failed to recreate log writer: %w", err)
		}
		s.RotateLogs = writer
	}

	return s.RotateLogs.Write(p)
}
