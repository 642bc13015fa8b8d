// Package lower implements the AST→HIR Frontend: a two-pass lowering that
// pre-resolves top-level symbols with their types, then converts the AST
// into a smaller, typed HIR while checking name references and type
// compatibility (spec §4.4).
package lower

import (
	"math"

	"github.com/redgush/flycatcher/ast"
	"github.com/redgush/flycatcher/hir"
	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
	"github.com/redgush/flycatcher/token"
	"github.com/redgush/flycatcher/types"
)

// Frontend runs both lowering passes over a single file's AST, grounded on
// original_source/compiler/src/lib.rs's FlycatcherFrontend.
type Frontend struct {
	file    *source.File
	report  *report.Report
	symbols *hir.SymbolTable
}

// New returns a Frontend for file, reporting diagnostics through r.
func New(file *source.File, r *report.Report) *Frontend {
	return &Frontend{file: file, report: r, symbols: hir.NewSymbolTable()}
}

// Symbols returns the symbol table built across both passes.
func (f *Frontend) Symbols() *hir.SymbolTable { return f.symbols }

// Lower runs resolveSymbols then convert over ast, returning the resulting
// HIR. Callers should check f.report.HasErrors() (or the returned ok) before
// handing the result to a backend, per spec §4.5/§7.
func (f *Frontend) Lower(items []ast.Meta) ([]hir.Meta, bool) {
	defer f.report.CatchICE(f.file.Path())

	f.resolveSymbols(items)
	hirOut := f.convert(items)
	return hirOut, !f.report.HasErrors()
}

// resolveSymbols is pass 1: for every top-level `Binary(=, Identifier, rhs)`
// not already in the symbol table, evaluate rhs once to infer its type and
// insert `name -> Declared(type)`. Symbol inserts are first-writer-wins
// (spec §5): a name already present — Declared or Defined — is left alone.
//
// Per spec §9's Decision D4, only *top-level* `=` is considered; an `=`
// nested inside an `if`/`while` block is invisible to this pass.
func (f *Frontend) resolveSymbols(items []ast.Meta) {
	for _, item := range items {
		bin, ok := item.Item.(ast.Binary)
		if !ok || bin.Op != ast.OpAssign {
			continue
		}

		ident, ok := bin.Left.Item.(ast.Identifier)
		if !ok {
			f.report.ErrorDiag(ErrInvalidSetTarget{At: bin.Left.Span})
			continue
		}
		if _, exists := f.symbols.Get(ident.Name); exists {
			continue
		}

		before := len(f.report.Diagnostics)
		t, ok := f.inferType(bin.Right)
		if !ok {
			if len(f.report.Diagnostics) == before {
				f.report.ErrorDiag(ErrInvalidVariableValue{At: bin.Right.Span})
			}
			continue
		}
		f.symbols.Declare(ident.Name, t)
	}
}

// inferType evaluates node's static type for pass 1, without emitting any
// HIR. It shares translation logic with convertExpr but does not mutate
// the symbol table's ref counts or Defined states.
func (f *Frontend) inferType(node ast.Meta) (types.Type, bool) {
	switch v := node.Item.(type) {
	case ast.Boolean:
		return types.Of(types.Bool), true
	case ast.Integer:
		if v.Value > math.MaxInt64 {
			return types.Of(types.Usize), true
		}
		return types.Of(types.Size), true
	case ast.Float:
		return types.Of(types.Float64), true
	case ast.String:
		return types.Of(types.NullString), true
	case ast.Identifier:
		// A Declared name already has the type pass 1 gave it; requiring a
		// Defined name before use is left to convertExpr in pass 2.
		vt, ok := f.symbols.Get(v.Name)
		if !ok {
			f.report.ErrorDiag(ErrUndeclaredVariable{At: node.Span})
			return types.Type{}, false
		}
		return vt.Type(), true
	case ast.Binary:
		switch v.Op {
		case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
			lt, lok := f.inferType(v.Left)
			rt, rok := f.inferType(v.Right)
			if !lok || !rok {
				return types.Type{}, false
			}
			if !lt.Equal(rt) {
				f.report.ErrorDiag(ErrTypeMismatch{
					At: node.Span, LeftAt: v.Left.Span, RightAt: v.Right.Span,
					LeftType: lt.String(), RightType: rt.String(),
				})
				return types.Type{}, false
			}
			return lt, true
		default:
			f.report.ErrorDiag(ErrUnsupportedExpression{At: node.Span})
			return types.Type{}, false
		}
	default:
		f.report.ErrorDiag(ErrUnsupportedExpression{At: node.Span})
		return types.Type{}, false
	}
}

// convert is pass 2: translate every top-level AST item into HIR, in
// source order, appending to hirOut.
func (f *Frontend) convert(items []ast.Meta) []hir.Meta {
	var out []hir.Meta
	for _, item := range items {
		m, ok := f.convertTopLevel(item, &out)
		if ok {
			out = append(out, m)
		}
	}
	return out
}

// convertTopLevel handles the two top-level forms spec §4.4 names
// (assignment, and anything else is unsupported); everything else falls
// through to ErrUnsupportedStatement.
func (f *Frontend) convertTopLevel(item ast.Meta, out *[]hir.Meta) (hir.Meta, bool) {
	switch v := item.Item.(type) {
	case ast.Binary:
		if v.Op == ast.OpAssign {
			return f.convertSet(item, v, out)
		}
	case ast.FunctionConstruct, ast.ClassConstruct, ast.VariableConstruct:
		f.report.ErrorDiag(ErrUnsupportedConstruct{At: item.Span, What: "constructs"})
		return hir.Meta{}, false
	case ast.Declare:
		f.report.ErrorDiag(ErrUnsupportedConstruct{At: item.Span, What: "external declarations"})
		return hir.Meta{}, false
	case ast.Template:
		f.report.ErrorDiag(ErrUnsupportedConstruct{At: item.Span, What: "template applications"})
		return hir.Meta{}, false
	}
	f.report.ErrorDiag(ErrUnsupportedStatement{At: item.Span})
	return hir.Meta{}, false
}

// convertSet converts `name = value` into a Set HIR node, checking the
// right-hand side's type against the symbol's declared type and updating
// the symbol table to Defined per spec §4.4.
func (f *Frontend) convertSet(item ast.Meta, bin ast.Binary, out *[]hir.Meta) (hir.Meta, bool) {
	ident, ok := bin.Left.Item.(ast.Identifier)
	if !ok {
		f.report.ErrorDiag(ErrInvalidSetTarget{At: bin.Left.Span})
		return hir.Meta{}, false
	}

	declared, exists := f.symbols.Get(ident.Name)
	if !exists {
		// resolveSymbols already reported this name (an invalid set target,
		// or an rhs that failed to infer); don't double-report here.
		return hir.Meta{}, false
	}

	value, ok := f.convertExpr(bin.Right)
	if !ok {
		return hir.Meta{}, false
	}

	valueType := hir.TypeOf(value.Item, f.symbols)
	if !valueType.Equal(declared.Type()) {
		f.report.ErrorDiag(ErrVariableTypeMismatch{
			TargetAt: bin.Left.Span, ValueAt: bin.Right.Span,
			TargetType: declared.Type().String(), ValueType: valueType.String(),
		})
		return hir.Meta{}, false
	}

	f.symbols.Define(ident.Name, declared.Type(), len(*out))
	return hir.New(item.Span, f.file.Path(), hir.Set{Target: hir.Named{Name: ident.Name}, Value: value}), true
}

// convertExpr lowers a single expression into HIR, consulting and updating
// the symbol table's Defined states and reference counts as it goes.
func (f *Frontend) convertExpr(node ast.Meta) (hir.Meta, bool) {
	switch v := node.Item.(type) {
	case ast.Boolean:
		return hir.New(node.Span, f.file.Path(), hir.Boolean{Value: v.Value}), true

	case ast.Integer:
		if v.Value > math.MaxInt64 {
			return hir.New(node.Span, f.file.Path(), hir.UnsignedInteger{Value: v.Value}), true
		}
		return hir.New(node.Span, f.file.Path(), hir.Integer{Value: int64(v.Value)}), true

	case ast.Float:
		return hir.New(node.Span, f.file.Path(), hir.Float{Value: v.Value}), true

	case ast.String:
		return hir.New(node.Span, f.file.Path(), hir.NullString{Value: token.UnquoteString(v.Value)}), true

	case ast.Identifier:
		vt, ok := f.symbols.Get(v.Name)
		if !ok {
			f.report.ErrorDiag(ErrUndeclaredVariable{At: node.Span})
			return hir.Meta{}, false
		}
		if vt.State == hir.Declared {
			f.report.ErrorDiag(ErrUndefinedVariable{At: node.Span})
			return hir.Meta{}, false
		}
		f.symbols.Reference(v.Name)
		return hir.New(node.Span, f.file.Path(), hir.Named{Name: v.Name}), true

	case ast.Binary:
		return f.convertArithmetic(node, v)

	default:
		f.report.ErrorDiag(ErrUnsupportedExpression{At: node.Span})
		return hir.Meta{}, false
	}
}

// convertArithmetic lowers +, -, *, / between two operands of identical
// type, per spec §4.4. Any other binary opcode reaching here (e.g. nested
// `=`, comparisons, bitwise ops) is unsupported by this core.
func (f *Frontend) convertArithmetic(node ast.Meta, bin ast.Binary) (hir.Meta, bool) {
	if bin.Op != ast.OpAdd && bin.Op != ast.OpSub && bin.Op != ast.OpMul && bin.Op != ast.OpDiv {
		f.report.ErrorDiag(ErrUnsupportedExpression{At: node.Span})
		return hir.Meta{}, false
	}

	before := len(f.report.Diagnostics)
	left, lok := f.convertExpr(bin.Left)
	right, rok := f.convertExpr(bin.Right)
	if !lok || !rok {
		if len(f.report.Diagnostics) == before {
			// An operand failed without its own diagnostic; report the
			// whole expression as invalid so the user isn't left silent.
			f.report.ErrorDiag(ErrInvalidExpression{At: node.Span})
		}
		return hir.Meta{}, false
	}

	leftType := hir.TypeOf(left.Item, f.symbols)
	rightType := hir.TypeOf(right.Item, f.symbols)
	if !leftType.Equal(rightType) {
		f.report.ErrorDiag(ErrTypeMismatch{
			At: node.Span, LeftAt: bin.Left.Span, RightAt: bin.Right.Span,
			LeftType: leftType.String(), RightType: rightType.String(),
		})
		return hir.Meta{}, false
	}

	var item hir.Node
	switch bin.Op {
	case ast.OpAdd:
		item = hir.Add{Left: left, Right: right}
	case ast.OpSub:
		item = hir.Subtract{Left: left, Right: right}
	case ast.OpMul:
		item = hir.Multiply{Left: left, Right: right}
	case ast.OpDiv:
		// Decision D2 (SPEC_FULL.md §7): Divide keeps the shared operand
		// type rather than the original's always-float division, so
		// hir.TypeOf's "type of the left operand" rule holds for Divide
		// the same way it does for Add/Subtract/Multiply.
		item = hir.Divide{Left: left, Right: right}
	}
	return hir.New(node.Span, f.file.Path(), item), true
}
