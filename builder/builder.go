package builder

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c-coh/dead-code-opt/ir"
)

// ErrMalformedInput is wrapped by all errors about input that can not be
// turned into a tree.
var ErrMalformedInput = errors.New("malformed input")

// BuildProgram reads the YAML tree file at the given path and builds an
// ir.Program. The program is nil if the input could not be built; otherwise
// the returned errors are warnings.
func BuildProgram(path string) (*ir.Program, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read input: %w", err)}
	}
	return Build(path, data)
}

// Build builds an ir.Program from YAML input. The name is only used in error
// messages.
func Build(name string, data []byte) (*ir.Program, []error) {
	b := new(builder)
	b.name = name

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		b.addError(fmt.Errorf("%s: %w: %v", name, ErrMalformedInput, err))
		return nil, b.warnings
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		b.addError(fmt.Errorf("%s: %w: empty document", name, ErrMalformedInput))
		return nil, b.warnings
	}

	b.processDocument(doc.Content[0])
	if b.failed {
		return nil, b.warnings
	}
	return b.program, b.warnings
}

type builder struct {
	name    string
	program *ir.Program

	failed   bool
	warnings []error
}

func (b *builder) addWarning(err error) {
	b.warnings = append(b.warnings, err)
}

func (b *builder) addError(err error) {
	b.failed = true
	b.warnings = append(b.warnings, err)
}

func (b *builder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %w: %s", b.name, n.Line, n.Column, ErrMalformedInput, fmt.Sprintf(format, args...))
}

func (b *builder) warnf(n *yaml.Node, format string, args ...interface{}) {
	b.addWarning(fmt.Errorf("%s:%d:%d: %s", b.name, n.Line, n.Column, fmt.Sprintf(format, args...)))
}

func (b *builder) processDocument(root *yaml.Node) {
	if root.Kind != yaml.MappingNode {
		b.addError(b.errorf(root, "expected mapping at top level"))
		return
	}

	moduleName := "main"
	var funcs *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "module":
			moduleName = value.Value
		case "funcs":
			funcs = value
		default:
			b.warnf(key, "ignoring unknown key %q", key.Value)
		}
	}

	b.program = ir.NewProgram(moduleName)
	if funcs == nil {
		b.warnf(root, "program has no functions")
		return
	}
	if funcs.Kind != yaml.SequenceNode {
		b.addError(b.errorf(funcs, "funcs must be a list"))
		return
	}
	for _, funcNode := range funcs.Content {
		f, err := b.processFunc(funcNode)
		if err != nil {
			b.addError(err)
			continue
		}
		if err := b.program.AddFunc(f); err != nil {
			b.addError(fmt.Errorf("%s:%d:%d: %w", b.name, funcNode.Line, funcNode.Column, err))
		}
	}
}

func pos(n *yaml.Node) ir.Pos {
	return ir.Pos{Line: n.Line, Col: n.Column}
}
