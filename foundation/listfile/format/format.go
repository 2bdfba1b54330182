// File: format.go
// Title: Listfile Formatter
// Description: Renders a listfile syntax tree under a column budget. Bodies
//              are walked top down; each statement picks between an aligned
//              and an indented rendering of its arguments.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package format

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/msto63/listfmt/foundation/core/config"
	mdwerror "github.com/msto63/listfmt/foundation/core/error"
	mdwlog "github.com/msto63/listfmt/foundation/core/log"
	"github.com/msto63/listfmt/foundation/listfile/ast"
	"github.com/msto63/listfmt/foundation/listfile/lexer"
	"github.com/msto63/listfmt/foundation/listfile/markup"
	"github.com/msto63/listfmt/foundation/listfile/parser"
	"github.com/msto63/listfmt/foundation/listfile/registry"
)

const byteOrderMark = "\uFEFF"

// flowNames are lowercased by canonical command casing even though the
// registry has no grammar for them
var flowNames = map[string]bool{
	"if": true, "elseif": true, "else": true, "endif": true,
	"foreach": true, "endforeach": true, "while": true, "endwhile": true,
	"function": true, "endfunction": true, "macro": true, "endmacro": true,
	"block": true, "endblock": true, "break": true, "continue": true,
	"return": true,
}

// ctrlNames take SeparateCtrlNameWithSpace instead of SeparateFnNameWithSpace
var ctrlNames = map[string]bool{
	"if": true, "elseif": true, "else": true, "endif": true,
	"foreach": true, "endforeach": true, "while": true, "endwhile": true,
}

// Result is the outcome of formatting one listfile
type Result struct {
	Text string
	// ReflowValid is false when some line outside a format-off region or a
	// multi-line token is wider than the configured line width
	ReflowValid bool
	Layout      *LayoutNode
}

// Options configures a Formatter
type Options struct {
	Config   *config.Config
	Registry *registry.Registry
	Logger   *mdwlog.Logger
}

// Formatter formats syntax trees. It holds no per-call state and may be
// shared between goroutines.
type Formatter struct {
	cfg      *config.Config
	registry *registry.Registry
	logger   *mdwlog.Logger
	markup   markup.Options
	literal  *regexp2.Regexp
}

// New creates a formatter
func New(opts Options) (*Formatter, error) {
	f, err := build(opts)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// build creates a formatter. On a bad literal pattern the formatter is
// still usable, without literal comment matching.
func build(opts Options) (*Formatter, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Registry == nil {
		reg, err := registry.New(registry.Options{
			Logger:     opts.Logger,
			Additional: opts.Config.AdditionalCommands,
		})
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}

	f := &Formatter{
		cfg:      opts.Config,
		registry: opts.Registry,
		logger:   opts.Logger.WithField("component", "listfile-format"),
		markup: markup.Options{
			BulletChar: opts.Config.Markup.BulletChar,
			EnumChar:   opts.Config.Markup.EnumChar,
			Fence:      opts.Config.Markup.Fence,
		},
	}
	if pattern := opts.Config.Markup.LiteralCommentPattern; pattern != "" {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return f, mdwerror.Wrap(err, "invalid literal comment pattern").
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("pattern", pattern)
		}
		f.literal = re
	}
	return f, nil
}

// Layout computes the layout of a Body tree. It returns the layout root,
// the output lines without line endings and whether every line fits. A
// format-off region is a single element that keeps its source line breaks.
func (f *Formatter) Layout(tree *ast.Node) (*LayoutNode, []string, bool) {
	s := &session{Formatter: f, out: &emitter{maxEmpty: f.cfg.Format.MaxEmptyLines}}
	root := s.layoutBody(tree, 0)

	lines := make([]string, len(s.out.lines))
	valid := true
	for i, l := range s.out.lines {
		if !l.raw {
			l.text = strings.TrimRight(l.text, " \t")
			if textWidth(l.text) > f.cfg.Format.LineWidth {
				valid = false
			}
		}
		lines[i] = l.text
	}
	return root, lines, valid
}

// FormatTree renders a parsed tree. source is the text the tree was parsed
// from; it selects the line ending in auto mode.
func (f *Formatter) FormatTree(tree *ast.Node, source string) Result {
	timer := f.logger.StartTimer("format")
	root, lines, valid := f.Layout(tree)

	var b strings.Builder
	if f.cfg.Format.EmitByteOrderMark {
		b.WriteString(byteOrderMark)
	}
	newline := LineEnding(f.cfg.Format.LineEnding, source)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString(newline)
	}

	if !valid {
		f.logger.Debug("Layout exceeds line width", mdwlog.Fields{
			"code":      mdwerror.CodeLayoutOverflow.String(),
			"lineWidth": f.cfg.Format.LineWidth,
		})
	}
	timer.Stop(mdwlog.Fields{"lines": len(lines)})
	return Result{Text: b.String(), ReflowValid: valid, Layout: root}
}

// FormatText tokenizes, parses and formats text
func (f *Formatter) FormatText(text string) (Result, error) {
	p, err := parser.New(parser.Options{Logger: f.logger, Registry: f.registry})
	if err != nil {
		return Result{}, err
	}
	tree, err := p.ParseText(text)
	if err != nil {
		return Result{}, err
	}
	return f.FormatTree(tree, text), nil
}

// Layout computes the layout of tree under cfg
func Layout(tree *ast.Node, cfg *config.Config) (*LayoutNode, []string, bool) {
	f, err := build(Options{Config: cfg})
	if f == nil {
		f, _ = build(Options{Config: cfg, Registry: registry.MustNew(registry.Options{})})
	}
	if err != nil {
		f.logger.WarnWithErr("Formatting with reduced configuration", err)
	}
	return f.Layout(tree)
}

// Format formats text under cfg with the command grammars of reg
func Format(text string, cfg *config.Config, reg *registry.Registry) (Result, error) {
	f, err := New(Options{Config: cfg, Registry: reg})
	if err != nil {
		return Result{}, err
	}
	return f.FormatText(text)
}

// LineEnding returns the newline sequence for mode. Auto picks the
// majority ending of source, unix on a tie.
func LineEnding(mode, source string) string {
	switch mode {
	case "windows":
		return "\r\n"
	case "auto":
		crlf := strings.Count(source, "\r\n")
		lf := strings.Count(source, "\n") - crlf
		if crlf > lf {
			return "\r\n"
		}
	}
	return "\n"
}

// session is the state of one layout pass
type session struct {
	*Formatter
	out *emitter
	// commentSeen is set once the first body comment was rendered
	commentSeen bool
	// unsort is set while laying out a statement carrying an unsort tag
	unsort bool
	// subargs is the per line argument limit of the current statement
	subargs int
}

// emitter collects body level output lines and the blank lines between
// them
type emitter struct {
	lines    []line
	pending  int
	started  bool
	maxEmpty int
}

// newline records a source line break since the last item
func (e *emitter) newline(count int) {
	e.pending += count
}

// emit places n at indent, preceded by the blank lines the source had
// there, limited to maxEmpty
func (e *emitter) emit(n *LayoutNode, indent int) {
	if e.started {
		for i := 0; i < min(e.pending-1, e.maxEmpty); i++ {
			e.lines = append(e.lines, line{})
		}
	}
	n.Row, n.Col = len(e.lines), indent
	n.Extent = indent + n.width()
	e.lines = append(e.lines, indentLines(indent, n.lines)...)
	e.pending = 0
	e.started = true
	absolutize(n)
}

func (s *session) indent(depth int) int {
	return depth * s.cfg.Format.TabSize
}

func (s *session) budget(depth int) int {
	return max(s.cfg.Format.LineWidth-s.indent(depth), 1)
}

// layoutBody emits the children of a Body node at depth
func (s *session) layoutBody(body *ast.Node, depth int) *LayoutNode {
	node := newLayout(ast.Body, Vertical)
	node.Row, node.Col = len(s.out.lines), s.indent(depth)

	for _, c := range body.Children {
		child, ok := c.(*ast.Node)
		if !ok {
			// the byte order mark is emitted from configuration
			continue
		}
		switch child.Kind {
		case ast.Whitespace:
			s.out.newline(countNewlines(child))

		case ast.Comment:
			n := s.layoutComment(child, s.budget(depth), !s.commentSeen)
			s.commentSeen = true
			s.out.emit(n, s.indent(depth))
			node.Children = append(node.Children, n)

		case ast.OnOffSwitch:
			n := s.layoutOnOff(child, s.indent(depth))
			s.out.emit(n, s.indent(depth))
			node.Children = append(node.Children, n)

		case ast.Statement:
			n := s.layoutStatement(child, depth)
			s.out.emit(n, s.indent(depth))
			node.Children = append(node.Children, n)

		case ast.FlowControl:
			node.Children = append(node.Children, s.layoutFlow(child, depth))
		}
	}

	node.Valid = true
	for _, c := range node.Children {
		node.Extent = max(node.Extent, c.Extent)
		node.Valid = node.Valid && c.Valid
	}
	return node
}

// layoutFlow emits a flow control block: its statements at depth and its
// bodies one level deeper
func (s *session) layoutFlow(flow *ast.Node, depth int) *LayoutNode {
	node := newLayout(ast.FlowControl, Vertical)
	node.Row, node.Col = len(s.out.lines), s.indent(depth)
	for _, child := range flow.Nodes() {
		var n *LayoutNode
		switch child.Kind {
		case ast.Statement:
			n = s.layoutStatement(child, depth)
			s.out.emit(n, s.indent(depth))
		case ast.Body:
			n = s.layoutBody(child, depth+1)
		default:
			continue
		}
		node.Children = append(node.Children, n)
		node.Extent = max(node.Extent, n.Extent)
		node.Valid = node.Valid && n.Valid
	}
	return node
}

// layoutOnOff copies a format-off region. The sentinel takes the current
// indent, everything after it is raw and keeps its source line breaks.
func (s *session) layoutOnOff(n *ast.Node, indent int) *LayoutNode {
	node := newLayout(ast.OnOffSwitch, Verbatim)
	toks := n.Tokens()
	first := toks[0]
	rest := toks[1:]
	if first.Kind == lexer.FormatOff && (len(rest) == 0 || rest[len(rest)-1].Kind != lexer.FormatOn) {
		// a region running to the end of input gives up its final line
		// breaks to the output terminator
		for len(rest) > 0 && (rest[len(rest)-1].Kind == lexer.Newline || rest[len(rest)-1].Kind == lexer.Whitespace) {
			rest = rest[:len(rest)-1]
		}
	}

	var b strings.Builder
	for _, tok := range rest {
		b.WriteString(tok.Spelling)
	}
	if b.Len() == 0 {
		node.lines = []line{{text: strings.TrimRight(first.Spelling, " \t")}}
		return node
	}
	// raw lines skip indentLines, so the sentinel carries its own indent
	node.lines = []line{{text: strings.Repeat(" ", indent) + first.Spelling + b.String(), raw: true}}
	return node
}

func countNewlines(n *ast.Node) int {
	count := 0
	for _, tok := range n.Tokens() {
		if tok.Kind == lexer.Newline {
			count++
		}
	}
	return count
}

// layoutStatement renders name(args) choosing between the aligned and the
// indented arrangement
func (s *session) layoutStatement(stmt *ast.Node, depth int) *LayoutNode {
	width := s.budget(depth)
	name := stmt.FuncName()
	opts := s.cfg.ForCommand(name)

	s.unsort = hasUnsortTag(stmt)
	s.subargs = opts.MaxSubargsPerLine
	defer func() { s.unsort, s.subargs = false, 0 }()

	start := s.commandName(stmt) + s.nameSeparator(name) + "("
	startWidth := textWidth(start)
	args := stmt.ArgGroup()

	var node *LayoutNode
	if args == nil || isEmpty(args) {
		node = newLayout(ast.Statement, Horizontal)
		node.lines = []line{{text: start + ")"}}
	} else {
		// one column stays free for the closing parenthesis
		aligned := s.layoutGroup(args, width-startWidth-1, opts)
		indented := s.layoutGroup(args, width-s.cfg.Format.TabSize-1, opts)

		alignedHeight := aligned.height()
		indentedHeight := indented.height() + 1
		if aligned.width() > width-startWidth-1 || 4*indentedHeight <= alignedHeight {
			node = newLayout(ast.Statement, Indented)
			node.lines = append([]line{{text: start}}, indentLines(s.cfg.Format.TabSize, indented.lines)...)
			node.attach(indented, 1, s.cfg.Format.TabSize)
			node.endComment = indented.endComment
		} else {
			node = newLayout(ast.Statement, Aligned)
			first := aligned.lines[0]
			first.text = start + first.text
			node.lines = append([]line{first}, indentLines(startWidth, aligned.lines[1:])...)
			node.attach(aligned, 0, startWidth)
			node.endComment = aligned.endComment
		}

		multiline := len(node.lines) > 1
		last := &node.lines[len(node.lines)-1]
		if node.endComment || (opts.DanglingParens && multiline) || textWidth(last.text)+1 > width {
			node.lines = append(node.lines, line{text: ")"})
		} else {
			last.text += ")"
		}
	}
	node.endComment = false

	if comment := stmt.TrailingComment(); comment != nil {
		s.placeTrailingComment(node, comment, width)
	}
	return node.check(width)
}

// placeTrailingComment attaches a statement comment after the closing
// parenthesis, or beneath the statement when appending would take far more
// lines or has no room for a word
func (s *session) placeTrailingComment(node *LayoutNode, comment *ast.Node, width int) {
	text := commentText(comment)
	lastWidth := node.lastWidth()
	avail := width - lastWidth - 1

	beneath := commentParagraph(text, width)
	child := newLayout(ast.Comment, Packed)
	child.endComment = true

	if firstWord := firstField(text); avail >= textWidth("# "+firstWord) {
		appended := commentParagraph(text, avail)
		if len(appended) < 4*len(beneath) {
			child.lines = appended
			row := len(node.lines) - 1
			node.lines, _ = appendLines(node.lines, appended)
			node.attach(child, row, lastWidth+1)
			return
		}
	}
	child.lines = beneath
	node.attach(child, len(node.lines), 0)
	node.lines = append(node.lines, beneath...)
}

// commandName applies the configured command case
func (s *session) commandName(stmt *ast.Node) string {
	tok, _ := stmt.Child(ast.FunctionName).Token()
	switch s.cfg.Format.CommandCase {
	case "lower":
		return strings.ToLower(tok.Spelling)
	case "upper":
		return strings.ToUpper(tok.Spelling)
	case "canonical":
		lower := strings.ToLower(tok.Spelling)
		if _, known := s.registry.Lookup(lower); known || flowNames[lower] {
			return lower
		}
	}
	return tok.Spelling
}

func (s *session) nameSeparator(name string) string {
	if ctrlNames[name] {
		if s.cfg.Format.SeparateCtrlNameWithSpace {
			return " "
		}
		return ""
	}
	if s.cfg.Format.SeparateFnNameWithSpace {
		return " "
	}
	return ""
}

// keywordText applies the configured keyword case to keywords and flags
func (s *session) keywordText(tok lexer.Token) string {
	if tok.Kind != lexer.Word {
		return tok.Spelling
	}
	switch s.cfg.Format.KeywordCase {
	case "upper":
		return strings.ToUpper(tok.Spelling)
	case "lower":
		return strings.ToLower(tok.Spelling)
	}
	return tok.Spelling
}

// isEmpty reports whether a group holds nothing but whitespace
func isEmpty(n *ast.Node) bool {
	for _, tok := range n.Tokens() {
		if !tok.IsTrivia() {
			return false
		}
	}
	return true
}

func hasUnsortTag(stmt *ast.Node) bool {
	for _, tok := range stmt.Tokens() {
		if tok.IsComment() && lexer.IsUnsortTag(tok.Tag()) {
			return true
		}
	}
	return false
}

func firstField(text string) string {
	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
