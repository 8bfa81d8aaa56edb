// attredit: edit an attribute document in the terminal
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/kungfusheep/attrview"
	"github.com/kungfusheep/attrview/attr"
)

//go:embed sample.yaml
var sample []byte

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout *os.File) error {
	fs := flag.NewFlagSet("attredit", flag.ContinueOnError)
	file := fs.String("file", "", "YAML document to edit (default: built-in sample)")
	themeName := fs.String("theme", "dark", "colour theme: dark, light or mono")
	logPath := fs.String("log", "", "write debug logs to this file")
	inline := fs.Bool("inline", false, "print the document once and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	theme, ok := attrview.ThemeByName(*themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q", *themeName)
	}

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	src := io.Reader(bytes.NewReader(sample))
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	group, err := attr.DecodeGroup(src)
	if err != nil {
		return err
	}
	doc := attr.NewDocument(group, attr.WithLogger(logger))

	if *inline || !isatty.IsTerminal(stdout.Fd()) {
		root := attrview.NewRootViewModel(doc, nil)
		_, err := fmt.Fprintln(stdout, attrview.ComplexView(root, attrview.RenderState{ExpandAll: true}, theme))
		return err
	}

	editor := attrview.NewEditor(doc,
		attrview.WithTheme(theme),
		attrview.WithTitle(group.Name),
		attrview.WithEditorLogger(logger),
	)
	if w, _, err := term.GetSize(int(stdout.Fd())); err == nil {
		editor.Update(tea.WindowSizeMsg{Width: w})
	}
	if _, err := tea.NewProgram(editor, tea.WithAltScreen(), tea.WithOutput(stdout)).Run(); err != nil {
		return err
	}
	logger.Info("exit", "changes", editor.Changes(), "errors", doc.ErrorBag().Len())
	return nil
}

func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
