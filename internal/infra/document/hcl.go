package document

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/zclconf/go-cty/cty"
)

// taskBlockType is the block type of one task inside the root block:
//
//	dagrs {
//	  task "b" {
//	    name  = "Task B"
//	    after = ["a"]
//	    cmd   = "echo b"
//	  }
//	}
const taskBlockType = "task"

func decodeHCL(source, text, rootKey string) (*domain.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(text), source)
	if diags.HasErrors() {
		return nil, &domain.DecodeError{Err: domain.ErrIllegalDocument, Source: source, Detail: diags.Error()}
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: rootKey}},
	})
	if diags.HasErrors() {
		return nil, &domain.DecodeError{Err: domain.ErrIllegalDocument, Source: source, Detail: diags.Error()}
	}

	roots := content.Blocks.OfType(rootKey)
	switch len(roots) {
	case 0:
		return nil, &domain.DecodeError{Err: domain.ErrMissingRootKey, Source: source, Detail: rootKey}
	case 1:
	default:
		return nil, &domain.DecodeError{
			Err:    domain.ErrIllegalDocument,
			Source: source,
			Detail: fmt.Sprintf("duplicate %q block at %s", rootKey, roots[1].DefRange),
		}
	}

	body, diags := roots[0].Body.Content(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: taskBlockType, LabelNames: []string{"id"}}},
	})
	if diags.HasErrors() {
		return nil, &domain.DecodeError{Err: domain.ErrIllegalDocument, Source: source, Detail: diags.Error()}
	}

	set := newEntrySet(source)
	for _, block := range body.Blocks {
		fields, err := blockFields(block)
		if err != nil {
			return nil, &domain.DecodeError{Err: domain.ErrIllegalDocument, Source: source, Detail: err.Error()}
		}
		entry := domain.RawEntry{ID: block.Labels[0], Fields: fields, Line: block.DefRange.Start.Line}
		if err := set.add(entry); err != nil {
			return nil, err
		}
	}

	if len(set.entries) == 0 {
		return nil, &domain.DecodeError{Err: domain.ErrEmptyDocument, Source: source}
	}
	return &domain.Document{RootKey: rootKey, Entries: set.entries}, nil
}

// blockFields evaluates every attribute of a task block without variables.
func blockFields(block *hcl.Block) (map[string]any, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	fields := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := ctyValue(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", attr.NameRange, name, err)
		}
		fields[name] = v
	}
	return fields, nil
}

// ctyValue converts a cty value into the plain values entries carry.
// Whole numbers become int64, other numbers float64.
func ctyValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); bf.IsInt() && acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := ctyValue(ev)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case ty.IsMapType() || ty.IsObjectType():
		m := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			item, err := ctyValue(ev)
			if err != nil {
				return nil, err
			}
			m[k.AsString()] = item
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
