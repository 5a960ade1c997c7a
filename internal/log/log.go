package log

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mbndr/figlet4go"
)

type Logger interface {
	Ok(text string, args ...interface{})
	Info(text string, args ...interface{})
	Warn(text string, args ...interface{})
	Fatal(text string, args ...interface{})
	Prefix(prefix string) Logger
}

var (
	okTag    = color.New(color.FgHiGreen).Sprint("[  OK  ]")
	infoTag  = color.New(color.FgHiCyan).Sprint("[ INFO ]")
	warnTag  = color.New(color.FgHiYellow).Sprint("[ WARN ]")
	fatalTag = color.New(color.FgHiRed).Sprint("[ FAIL ]")
)

type defaultLogger struct {
	prefix string
}

func NewDefaultLogger() Logger {
	return &defaultLogger{}
}

func (l *defaultLogger) Prefix(prefix string) Logger {
	return &defaultLogger{
		prefix: prefix + " // ",
	}
}

func (l *defaultLogger) Ok(text string, args ...interface{}) {
	l.print(okTag, text, args...)
}

func (l *defaultLogger) Info(text string, args ...interface{}) {
	l.print(infoTag, text, args...)
}

func (l *defaultLogger) Warn(text string, args ...interface{}) {
	l.print(warnTag, text, args...)
}

func (l *defaultLogger) Fatal(text string, args ...interface{}) {
	l.print(fatalTag, text, args...)
	os.Exit(1)
}

func (l *defaultLogger) print(tag, text string, args ...interface{}) {
	fmt.Printf("%s %s %s%s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		tag,
		l.prefix,
		fmt.Sprintf(text, args...))
}

// PrintLogo renders the start-up banner. Colors are hex strings without the
// leading hash.
func PrintLogo(logoText string, colors []string) {
	render := figlet4go.NewAsciiRender()

	options := figlet4go.NewRenderOptions()
	options.FontColor = make([]figlet4go.Color, 0, len(colors))
	for _, hexColor := range colors {
		trueColor, err := figlet4go.NewTrueColorFromHexString(hexColor)
		if err != nil {
			continue
		}

		options.FontColor = append(options.FontColor, trueColor)
	}

	logo, err := render.RenderOpts(logoText, options)
	if err != nil {
		return
	}

	fmt.Print(logo)
}
