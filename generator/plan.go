// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albertocavalcante/commgen/internal/commbase"
	"github.com/albertocavalcante/commgen/model"
)

// Plan is the target-independent view of one Comm, in emission order.
type Plan struct {
	// Name is the Comm name.
	Name string

	Comm *model.Comm

	// Aliases are the non-object, non-enum shared schemas.
	Aliases []*Alias

	// Objects are the distinct object declarations, backend first.
	Objects []*Object

	// Enums are the distinct enum declarations, backend first.
	Enums []*Enum

	// Backend lists the backend methods (requests from the frontend).
	Backend []*Method

	// Frontend lists the frontend methods (events from the backend).
	Frontend []*Method

	resolver *Resolver
}

// Alias is a shared schema rendered as a type alias.
type Alias struct {
	Name        string
	Description string
	Schema      *model.Schema
	Ctx         Context
}

// Object is an object declaration.
type Object struct {
	Name        string
	Description string
	Schema      *model.Schema
	Fields      []Field
}

// IsAny reports whether the object renders as the target's arbitrary JSON
// value type.
func (o *Object) IsAny() bool { return o.Schema.IsAny() }

// Enum is an enum declaration.
type Enum struct {
	Name        string
	Description string
	Values      []string
}

// Field is an object property, a method parameter or a method result.
type Field struct {
	// Name is the wire name.
	Name        string
	Description string
	Required    bool
	Schema      *model.Schema

	// Ctx is the naming context used to derive the field type.
	Ctx Context
}

// Method is a method of either direction.
type Method struct {
	// Name is the wire name.
	Name        string
	Summary     string
	Description string
	Direction   model.Direction
	Params      []Field

	// Result is nil for methods without a result.
	Result *Field
}

// ParamsType is the name of the method's parameter record.
func (m *Method) ParamsType() string {
	return commbase.ToPascal(m.Name) + "Params"
}

// Doc returns the summary followed by the description, if any.
func (m *Method) Doc() string {
	if m.Description == "" {
		return m.Summary
	}
	return m.Summary + "\n\n" + m.Description
}

// Source names the contract documents, backend first.
func (p *Plan) Source() string {
	return strings.Join(p.Comm.Sources(), ", ")
}

// HasBackend reports whether the Comm has a backend contract.
func (p *Plan) HasBackend() bool { return p.Comm.Backend != nil }

// HasFrontend reports whether the Comm has a frontend contract.
func (p *Plan) HasFrontend() bool { return p.Comm.Frontend != nil }

// ParamRecords returns the methods that take parameters, backend first.
func (p *Plan) ParamRecords() []*Method {
	var out []*Method
	for _, m := range p.Methods() {
		if len(m.Params) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// Methods returns all methods, backend first.
func (p *Plan) Methods() []*Method {
	out := make([]*Method, 0, len(p.Backend)+len(p.Frontend))
	out = append(out, p.Backend...)
	return append(out, p.Frontend...)
}

// Replies returns the backend methods that declare a result.
func (p *Plan) Replies() []*Method {
	var out []*Method
	for _, m := range p.Backend {
		if m.Result != nil {
			out = append(out, m)
		}
	}
	return out
}

// Deriver returns a type deriver for table.
func (p *Plan) Deriver(table TypeTable) *Deriver {
	return &Deriver{res: p.resolver, table: table}
}

// NewPlan validates c and collects its declarations.
//
// Every type reachable from the contracts is derived once, so unresolved
// references and unknown primitive types are reported here rather than by
// a target. Errors are *model.SchemaError values.
func NewPlan(c *model.Comm) (*Plan, error) {
	if c.Backend == nil && c.Frontend == nil {
		return nil, &model.SchemaError{Comm: c.Name, Err: fmt.Errorf("%w: no contracts", model.ErrMissingSchema)}
	}

	p := &Plan{
		Name:     c.Name,
		Comm:     c,
		resolver: NewResolver(c),
	}
	b := &planner{
		plan:     p,
		declared: make(map[string]*model.Schema),
	}

	for _, ct := range c.Contracts() {
		if err := b.contract(ct); err != nil {
			var se *model.SchemaError
			if errors.As(err, &se) {
				se.Comm = c.Name
				se.Path = ct.Source + ": " + se.Path
				return nil, se
			}
			return nil, &model.SchemaError{Comm: c.Name, Path: ct.Source, Err: err}
		}
	}

	for _, m := range p.ParamRecords() {
		if err := b.declare(m.ParamsType(), nil); err != nil {
			return nil, &model.SchemaError{Comm: c.Name, Path: "method " + m.Name, Err: err}
		}
	}
	return p, nil
}

type planner struct {
	plan *Plan

	// declared maps every emitted identifier to its schema. Parameter
	// records map to nil.
	declared map[string]*model.Schema
}

func fail(path string, err error) error {
	return &model.SchemaError{Path: path, Err: err}
}

func (b *planner) derive(path string, ctx Context, s *model.Schema) error {
	if _, err := DeriveType(b.plan.resolver, checkTable, ctx, s); err != nil {
		return fail(path, err)
	}
	return nil
}

// declare records name. Redeclaring a name with a schema of the same shape
// returns errAlreadyDeclared and the caller skips the declaration.
func (b *planner) declare(name string, s *model.Schema) error {
	prev, exists := b.declared[name]
	if !exists {
		b.declared[name] = s
		return nil
	}
	if s != nil && prev != nil && model.SameShape(prev, s) {
		return errAlreadyDeclared
	}
	return fmt.Errorf("%w: %s", model.ErrDuplicateName, name)
}

var errAlreadyDeclared = errors.New("already declared")

func (b *planner) contract(ct *model.Contract) error {
	for _, m := range ct.Methods {
		method, err := b.method(ct.Direction, m)
		if err != nil {
			return err
		}
		if ct.Direction == model.Backend {
			b.plan.Backend = append(b.plan.Backend, method)
		} else {
			b.plan.Frontend = append(b.plan.Frontend, method)
		}
	}

	for _, prop := range ct.Components.Schemas {
		s := prop.Schema
		if s.Kind == model.KindObject || s.Kind == model.KindEnum {
			continue
		}
		path := "schema " + prop.Name
		ctx := Context{prop.Name}
		if err := b.derive(path, ctx, s); err != nil {
			return err
		}
		name := commbase.ToPascal(prop.Name)
		if err := b.declare(name, s); err != nil {
			if errors.Is(err, errAlreadyDeclared) {
				continue
			}
			return fail(path, err)
		}
		b.plan.Aliases = append(b.plan.Aliases, &Alias{
			Name:        name,
			Description: s.Description,
			Schema:      s,
			Ctx:         ctx,
		})
	}

	for n := range Objects(ct) {
		if err := b.object(n); err != nil {
			return err
		}
	}
	for n := range Enums(ct) {
		if err := b.enum(n); err != nil {
			return err
		}
	}
	return nil
}

func (b *planner) method(dir model.Direction, m *model.Method) (*Method, error) {
	path := "method " + m.Name
	if strings.TrimSpace(m.Summary) == "" {
		return nil, fail(path, fmt.Errorf("%w: method has no summary", model.ErrMissingDescription))
	}

	out := &Method{
		Name:        m.Name,
		Summary:     m.Summary,
		Description: m.Description,
		Direction:   dir,
	}
	for _, p := range m.Params {
		ppath := path + ": param " + p.Name
		if strings.TrimSpace(p.Description) == "" {
			return nil, fail(ppath, model.ErrMissingDescription)
		}
		f := Field{
			Name:        p.Name,
			Description: p.Description,
			Required:    p.Required,
			Schema:      p.Schema,
			Ctx:         Context{p.Name, m.Name},
		}
		if err := b.derive(ppath, f.Ctx, f.Schema); err != nil {
			return nil, err
		}
		out.Params = append(out.Params, f)
	}
	if m.Result != nil {
		f := &Field{
			Name:        m.Result.Name,
			Description: m.Result.Description,
			Required:    true,
			Schema:      m.Result.Schema,
			Ctx:         Context{m.Name},
		}
		if err := b.derive(path+": result", f.Ctx, f.Schema); err != nil {
			return nil, err
		}
		out.Result = f
	}
	return out, nil
}

func (b *planner) object(n Node) error {
	name := ObjectName(n.Ctx, n.Schema)
	path := "object " + n.Ctx.String()
	if name == "" {
		return fail(path, fmt.Errorf("%w: object has no name", model.ErrInvalidSchema))
	}
	desc := n.Description()
	if strings.TrimSpace(desc) == "" {
		return fail(path, model.ErrMissingDescription)
	}

	obj := &Object{Name: name, Description: desc, Schema: n.Schema}
	inner := innerContext(n.Ctx, n.Schema)
	for _, prop := range n.Schema.Properties {
		fpath := path + ": property " + prop.Name
		if strings.TrimSpace(prop.Schema.Description) == "" {
			return fail(fpath, model.ErrMissingDescription)
		}
		f := Field{
			Name:        prop.Name,
			Description: prop.Schema.Description,
			Required:    n.Schema.IsRequired(prop.Name),
			Schema:      prop.Schema,
			Ctx:         inner.Push(prop.Name),
		}
		if err := b.derive(fpath, f.Ctx, f.Schema); err != nil {
			return err
		}
		obj.Fields = append(obj.Fields, f)
	}

	if err := b.declare(name, n.Schema); err != nil {
		if errors.Is(err, errAlreadyDeclared) {
			return nil
		}
		return fail(path, err)
	}
	b.plan.Objects = append(b.plan.Objects, obj)
	return nil
}

func (b *planner) enum(n Node) error {
	name := EnumName(n.Ctx, n.Schema)
	path := "enum " + n.Ctx.String()
	if name == "" {
		return fail(path, fmt.Errorf("%w: enum has no name", model.ErrInvalidSchema))
	}
	if len(n.Schema.Values) == 0 {
		return fail(path, fmt.Errorf("%w: enum has no values", model.ErrInvalidSchema))
	}
	members := make(map[string]string, len(n.Schema.Values))
	for _, v := range n.Schema.Values {
		member := commbase.MemberName(v)
		if prev, ok := members[member]; ok {
			return fail(path, fmt.Errorf("%w: values %q and %q both become member %s", model.ErrDuplicateName, prev, v, member))
		}
		members[member] = v
	}

	desc := n.Schema.Description
	if desc == "" {
		desc = "Possible values for " + commbase.ToPascal(n.Ctx.Key())
		if owner := n.Ctx.Owner(); owner != "" {
			desc += " in " + commbase.ToPascal(owner)
		}
	}

	if err := b.declare(name, n.Schema); err != nil {
		if errors.Is(err, errAlreadyDeclared) {
			return nil
		}
		return fail(path, err)
	}
	b.plan.Enums = append(b.plan.Enums, &Enum{Name: name, Description: desc, Values: n.Schema.Values})
	return nil
}
