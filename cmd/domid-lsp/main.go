// Command domid-lsp is a language server that reports literalid and ttid
// findings for HTML templates as the editor changes them.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/domid/internal/config"
	"github.com/mithrel/domid/internal/lint"
	"github.com/mithrel/domid/internal/lint/tmplcheck"
	"github.com/mithrel/domid/internal/logging"
)

type request struct {
	RPC    string           `json:"jsonrpc"`
	ID     *json.RawMessage `json:"id,omitempty"`
	Method string           `json:"method"`
	Params json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	RPC    string           `json:"jsonrpc"`
	ID     *json.RawMessage `json:"id,omitempty"`
	Result any              `json:"result"`
}

type notification struct {
	RPC    string `json:"jsonrpc"`
	Method string `json:"method"`
	Params any    `json:"params"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
}

type serverCapabilities struct {
	// TextDocumentSync 1 means full document text on every change.
	TextDocumentSync   int                `json:"textDocumentSync"`
	CompletionProvider completionProvider `json:"completionProvider"`
}

type completionProvider struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type completionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type completionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []completionItem `json:"items"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type textDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

type position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start position `json:"start"`
	End   position `json:"end"`
}

type diagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity"`
	Code     string   `json:"code"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
}

type publishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []diagnostic `json:"diagnostics"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type didChangeParams struct {
	TextDocument   textDocumentIdentifier `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type didSaveParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

type completionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
}

// LSP DiagnosticSeverity values.
const (
	lspError   = 1
	lspWarning = 2
)

var errExit = errors.New("exit")

type server struct {
	out      io.Writer
	log      *zap.Logger
	severity map[string]lint.Severity
	docs     map[string]string
}

func newServer(out io.Writer, log *zap.Logger, v *viper.Viper) *server {
	sev := make(map[string]lint.Severity, len(config.Rules))
	for _, r := range config.Rules {
		s, err := lint.ParseSeverity(v.GetString(config.SeverityKey(r)))
		if err != nil {
			s = lint.SeverityDeny
		}
		sev[r] = s
	}
	return &server{out: out, log: log, severity: sev, docs: map[string]string{}}
}

// main reads Content-Length framed JSON-RPC messages from stdin until EOF or
// an exit notification. Logs go to stderr; stdout carries the protocol.
func main() {
	v := viper.New()
	if err := config.Load(context.Background(), v); err != nil {
		fmt.Fprintln(os.Stderr, "domid-lsp:", err)
		os.Exit(1)
	}
	logger, err := logging.FromConfig(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, "domid-lsp:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	s := newServer(os.Stdout, logger.Named("lsp"), v)
	if err := s.serve(os.Stdin); err != nil && !errors.Is(err, errExit) {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func (s *server) serve(in io.Reader) error {
	s.log.Info("server started")
	reader := bufio.NewReader(in)
	for {
		msg, err := readMessage(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.handleMessage(msg); err != nil {
			return err
		}
	}
}

// readMessage reads one Content-Length framed message.
func readMessage(reader *bufio.Reader) ([]byte, error) {
	contentLength := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if lengthStr, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			length, err := strconv.Atoi(lengthStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = length
		}
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing Content-Length")
	}

	msg := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *server) handleMessage(msg []byte) error {
	s.log.Debug("received", zap.ByteString("msg", msg))

	var req request
	if err := json.Unmarshal(msg, &req); err != nil {
		s.log.Warn("unmarshal request", zap.Error(err))
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.reply(req.ID, initializeResult{
			Capabilities: serverCapabilities{
				TextDocumentSync:   1,
				CompletionProvider: completionProvider{TriggerCharacters: []string{"{", " "}},
			},
		})
	case "textDocument/didOpen":
		var p didOpenParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil
		}
		return s.update(p.TextDocument.URI, p.TextDocument.Text)
	case "textDocument/didChange":
		var p didChangeParams
		if err := json.Unmarshal(req.Params, &p); err != nil || len(p.ContentChanges) == 0 {
			return nil
		}
		return s.update(p.TextDocument.URI, p.ContentChanges[len(p.ContentChanges)-1].Text)
	case "textDocument/didSave":
		var p didSaveParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil
		}
		if p.Text != nil {
			return s.update(p.TextDocument.URI, *p.Text)
		}
		data, err := os.ReadFile(uriPath(p.TextDocument.URI))
		if err != nil {
			s.log.Warn("read saved document", zap.Error(err))
			return nil
		}
		return s.update(p.TextDocument.URI, string(data))
	case "textDocument/didClose":
		var p struct {
			TextDocument textDocumentIdentifier `json:"textDocument"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil
		}
		delete(s.docs, p.TextDocument.URI)
		return s.publish(p.TextDocument.URI, nil)
	case "textDocument/completion":
		var p completionParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			s.log.Warn("parse completion params", zap.Error(err))
			return s.reply(req.ID, completionList{})
		}
		return s.reply(req.ID, completionList{Items: s.completions(p)})
	case "shutdown":
		return s.reply(req.ID, nil)
	case "exit":
		return errExit
	}
	return nil
}

func (s *server) update(uri, text string) error {
	if !isTemplate(uri) {
		return nil
	}
	s.docs[uri] = text
	findings, err := tmplcheck.Check(uriPath(uri), []byte(text))
	if err != nil {
		s.log.Warn("check template", zap.String("uri", uri), zap.Error(err))
	}
	diags := make([]diagnostic, 0, len(findings))
	for _, f := range findings {
		sev := s.severity[f.Rule]
		if sev == lint.SeverityAllow {
			continue
		}
		d := diagnostic{
			Range:    lspRange{Start: toPosition(text, f.Offset), End: toPosition(text, f.End)},
			Severity: lspError,
			Code:     f.Rule,
			Source:   "domid",
			Message:  f.Message,
		}
		if sev == lint.SeverityWarn {
			d.Severity = lspWarning
		}
		if f.Reason != "" {
			d.Message += ": " + f.Reason
		}
		diags = append(diags, d)
	}
	return s.publish(uri, diags)
}

func (s *server) publish(uri string, diags []diagnostic) error {
	if diags == nil {
		diags = []diagnostic{}
	}
	return s.send(notification{
		RPC:    "2.0",
		Method: "textDocument/publishDiagnostics",
		Params: publishDiagnosticsParams{URI: uri, Diagnostics: diags},
	})
}

func (s *server) reply(id *json.RawMessage, result any) error {
	return s.send(response{RPC: "2.0", ID: id, Result: result})
}

func (s *server) send(v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n%s", len(body), body); err != nil {
		return err
	}
	s.log.Debug("sent", zap.ByteString("msg", body))
	return nil
}

// completions offers the id template functions inside an open action.
func (s *server) completions(p completionParams) []completionItem {
	line := s.currentLine(p.TextDocument.URI, p.Position.Line)
	if !inAction(prefixAt(line, p.Position.Character)) {
		return nil
	}
	return []completionItem{
		{Label: "domid", Kind: 3, Detail: "allocate a unique id from a name hint"},
		{Label: "domidKebab", Kind: 3, Detail: "allocate a unique id from a kebab-cased name hint"},
	}
}

// currentLine returns the zero-based line of the open document, falling
// back to the file on disk.
func (s *server) currentLine(uri string, line int) string {
	text, ok := s.docs[uri]
	if !ok {
		data, err := os.ReadFile(uriPath(uri))
		if err != nil {
			s.log.Debug("read document", zap.Error(err))
			return ""
		}
		text = string(data)
	}
	lines := strings.Split(text, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

func inAction(prefix string) bool {
	open := strings.LastIndex(prefix, "{{")
	return open >= 0 && !strings.Contains(prefix[open:], "}}")
}

// prefixAt returns line up to the UTF-16 offset character.
func prefixAt(line string, character int) string {
	units := 0
	for i, r := range line {
		if units >= character {
			return line[:i]
		}
		units += utf16Len(r)
	}
	return line
}

// toPosition converts a byte offset into a zero-based line and UTF-16
// character offset.
func toPosition(text string, offset int) position {
	offset = min(offset, len(text))
	var p position
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			p.Line++
			lineStart = i + 1
		}
	}
	for _, r := range text[lineStart:offset] {
		p.Character += utf16Len(r)
	}
	return p
}

func utf16Len(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

func isTemplate(uri string) bool {
	return slices.Contains(tmplcheck.Extensions, filepath.Ext(uriPath(uri)))
}

func uriPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
