package sema

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

// resolveType lowers a type syntax node to a semantic type in the
// current scope. Errors produce NoTypeID after reporting; callers
// propagate it silently. Results are memoized per syntax node: one
// declaration list like "struct s { int x; } a, b;" shares its
// specifier node across declarators, and the body must define the tag
// only once.
func (c *Checker) resolveType(id ast.TypeID) types.TypeID {
	if t, seen := c.resolved[id]; seen {
		return t
	}
	t := c.resolveTypeUncached(id)
	c.resolved[id] = t
	return t
}

func (c *Checker) resolveTypeUncached(id ast.TypeID) types.TypeID {
	node := c.b.Types.Get(id)
	if node == nil {
		return types.NoTypeID
	}
	switch node.Kind {
	case ast.TypePrim:
		data, _ := c.b.Types.Prim(id)
		return c.resolvePrim(data, node.Span)
	case ast.TypeNamed:
		data, _ := c.b.Types.NamedType(id)
		return c.resolveNamed(data, node.Span)
	case ast.TypePointer:
		data, _ := c.b.Types.Pointer(id)
		elem := c.resolveType(data.Elem)
		if !elem.IsValid() {
			return types.NoTypeID
		}
		ptr := c.info.Types.Pointer(elem)
		if data.Const {
			ptr = c.info.Types.Qualify(ptr)
		}
		return ptr
	case ast.TypeArray:
		data, _ := c.b.Types.Array(id)
		return c.resolveArray(data, node.Span)
	case ast.TypeFunc:
		data, _ := c.b.Types.Func(id)
		return c.resolveFuncType(data)
	case ast.TypeRecord:
		data, _ := c.b.Types.Record(id)
		return c.resolveRecord(data, node.Span)
	case ast.TypeEnum:
		data, _ := c.b.Types.Enum(id)
		return c.resolveEnum(data, node.Span)
	default:
		return types.NoTypeID
	}
}

func (c *Checker) resolvePrim(data *ast.TypePrimData, sp source.Span) types.TypeID {
	bt := c.info.Types.Builtins()
	var t types.TypeID
	switch data.Prim {
	case ast.PrimVoid:
		t = bt.Void
	case ast.PrimBool:
		t = bt.Bool
	case ast.PrimChar:
		t = bt.Char
	case ast.PrimSChar:
		t = bt.SChar
	case ast.PrimUChar:
		t = bt.UChar
	case ast.PrimShort:
		t = bt.Short
	case ast.PrimUShort:
		t = bt.UShort
	case ast.PrimInt:
		t = bt.Int
	case ast.PrimUInt:
		t = bt.UInt
	case ast.PrimLong:
		t = bt.Long
	case ast.PrimULong:
		t = bt.ULong
	case ast.PrimLongLong:
		t = bt.LongLong
	case ast.PrimULongLong:
		t = bt.ULongLong
	case ast.PrimFloat:
		t = bt.Float
	case ast.PrimDouble:
		t = bt.Double
	case ast.PrimLongDouble:
		c.report(diag.KindUnsupportedConstructError, sp, "'long double' is not supported")
		return types.NoTypeID
	default:
		return types.NoTypeID
	}
	if data.Const {
		t = c.info.Types.Qualify(t)
	}
	return t
}

func (c *Checker) resolveNamed(data *ast.TypeNamedData, sp source.Span) types.TypeID {
	symID, found := c.info.Table.Lookup(c.scope, data.Name)
	if !found {
		c.report(diag.KindUndeclaredIdentifierError, sp,
			"use of undeclared type name '"+c.lookupName(data.Name)+"'")
		return types.NoTypeID
	}
	sym := c.info.Table.Symbol(symID)
	if sym.Kind != symbols.SymTypedef {
		c.report(diag.KindTypeMismatchError, sp,
			"'"+c.lookupName(data.Name)+"' is a "+sym.Kind.String()+", not a type")
		return types.NoTypeID
	}
	t := sym.Type
	if data.Const {
		t = c.info.Types.Qualify(t)
	}
	return t
}

func (c *Checker) resolveArray(data *ast.TypeArrayData, sp source.Span) types.TypeID {
	elem := c.resolveType(data.Elem)
	if !elem.IsValid() {
		return types.NoTypeID
	}
	if c.info.Types.IsVoid(elem) {
		c.report(diag.KindTypeMismatchError, sp, "array of void is not allowed")
		return types.NoTypeID
	}
	if c.info.Types.IsFunc(elem) {
		c.report(diag.KindTypeMismatchError, sp, "array of functions is not allowed")
		return types.NoTypeID
	}
	if !data.Size.IsValid() {
		return c.info.Types.Intern(types.MakeIncompleteArray(elem))
	}
	c.checkExpr(data.Size)
	val, ok := c.foldInt(data.Size)
	if !ok {
		return types.NoTypeID
	}
	if val <= 0 {
		c.report(diag.KindConstantEvaluationError, c.b.Exprs.Get(data.Size).Span,
			"array size must be a positive constant")
		return types.NoTypeID
	}
	return c.info.Types.Intern(types.MakeArray(elem, uint32(val)))
}

// resolveFuncType lowers a function declarator. Parameter types get
// the standard adjustments: arrays decay to pointers and function
// parameters become function pointers.
func (c *Checker) resolveFuncType(data *ast.TypeFuncData) types.TypeID {
	ret := c.resolveType(data.Ret)
	if !ret.IsValid() {
		return types.NoTypeID
	}
	if c.info.Types.IsArray(ret) {
		c.report(diag.KindTypeMismatchError, c.b.Types.Get(data.Ret).Span,
			"functions cannot return arrays")
		return types.NoTypeID
	}
	params := make([]types.TypeID, 0, len(data.Params))
	for _, pid := range data.Params {
		p := c.b.Decls.Param(pid)
		pt := c.resolveType(p.Type)
		if !pt.IsValid() {
			return types.NoTypeID
		}
		if c.info.Types.IsVoid(pt) {
			c.report(diag.KindTypeMismatchError, p.Span, "parameter cannot have type void")
			return types.NoTypeID
		}
		params = append(params, c.adjustParam(pt))
	}
	return c.info.Types.Func(ret, params, data.Variadic)
}

func (c *Checker) adjustParam(t types.TypeID) types.TypeID {
	switch {
	case c.info.Types.IsArray(t), c.info.Types.IsFunc(t):
		return c.info.Types.Decay(t)
	default:
		return t
	}
}

// resolveRecord handles struct/union spellings: a bare tag reference
// finds or forward-declares the tag; a body defines it.
func (c *Checker) resolveRecord(data *ast.TypeRecordData, sp source.Span) types.TypeID {
	kind := symbols.SymTag
	var t types.TypeID

	if data.Name != source.NoStringID {
		if !data.HasBody {
			// Reference: find an existing tag anywhere outward, or
			// forward-declare in the current scope.
			if symID, found := c.info.Table.LookupTag(c.scope, data.Name); found {
				sym := c.info.Table.Symbol(symID)
				if !c.tagMatches(sym.Type, data.IsUnion, false) {
					c.report(diag.KindConflictingTypesError, sp,
						"tag '"+c.lookupName(data.Name)+"' refers to a different kind of type",
						diag.Note{Span: sym.Span, Msg: "previously declared here"})
					return types.NoTypeID
				}
				return c.qualifyTag(sym.Type, data.Const)
			}
			t = c.info.Types.NewRecord(data.Name, data.IsUnion)
			c.info.Table.DeclareTag(c.scope, symbols.Symbol{
				Kind: kind, Name: data.Name, Type: t, Span: sp,
			})
			return c.qualifyTag(t, data.Const)
		}

		// Definition: the tag must not already be complete in this scope.
		if symID, found := c.info.Table.LookupTagLocal(c.scope, data.Name); found {
			sym := c.info.Table.Symbol(symID)
			if !c.tagMatches(sym.Type, data.IsUnion, false) {
				c.report(diag.KindConflictingTypesError, sp,
					"tag '"+c.lookupName(data.Name)+"' refers to a different kind of type",
					diag.Note{Span: sym.Span, Msg: "previously declared here"})
				return types.NoTypeID
			}
			if info, ok := c.info.Types.RecordInfo(sym.Type); ok && info.Complete {
				c.report(diag.KindRedefinitionError, sp,
					"redefinition of '"+c.lookupName(data.Name)+"'",
					diag.Note{Span: sym.Span, Msg: "previous definition is here"})
				return types.NoTypeID
			}
			t = sym.Type
		} else {
			t = c.info.Types.NewRecord(data.Name, data.IsUnion)
			c.info.Table.DeclareTag(c.scope, symbols.Symbol{
				Kind: kind, Name: data.Name, Type: t, Span: sp,
			})
		}
	} else {
		t = c.info.Types.NewRecord(source.NoStringID, data.IsUnion)
	}

	if !c.completeRecordBody(t, data, sp) {
		return types.NoTypeID
	}
	return c.qualifyTag(t, data.Const)
}

func (c *Checker) completeRecordBody(t types.TypeID, data *ast.TypeRecordData, sp source.Span) bool {
	fields := make([]types.FieldInfo, 0, len(data.Fields))
	seen := make(map[source.StringID]source.Span, len(data.Fields))
	for _, fid := range data.Fields {
		f := c.b.Types.Field(fid)
		ft := c.resolveType(f.Type)
		if !ft.IsValid() {
			return false
		}
		if _, _, sized := c.info.Types.SizeAlign(ft); !sized {
			c.report(diag.KindTypeMismatchError, f.Span,
				"member '"+c.lookupName(f.Name)+"' has incomplete type "+c.typeString(ft))
			return false
		}
		if prev, dup := seen[f.Name]; dup {
			c.report(diag.KindRedefinitionError, f.Span,
				"duplicate member '"+c.lookupName(f.Name)+"'",
				diag.Note{Span: prev, Msg: "previous declaration is here"})
			return false
		}
		seen[f.Name] = f.Span
		fields = append(fields, types.FieldInfo{Name: f.Name, Type: ft})
	}
	if !c.info.Types.CompleteRecord(t, fields) {
		c.report(diag.KindTypeMismatchError, sp, "record cannot be laid out")
		return false
	}
	if sym, found := c.findTagSym(t); found {
		sym.Defined = true
	}
	return true
}

func (c *Checker) findTagSym(t types.TypeID) (*symbols.Symbol, bool) {
	info, ok := c.info.Types.RecordInfo(t)
	if !ok || info.Name == source.NoStringID {
		return nil, false
	}
	symID, found := c.info.Table.LookupTag(c.scope, info.Name)
	if !found {
		return nil, false
	}
	return c.info.Table.Symbol(symID), true
}

func (c *Checker) tagMatches(t types.TypeID, wantUnion, wantEnum bool) bool {
	tt, ok := c.info.Types.Lookup(t)
	if !ok {
		return false
	}
	switch tt.Kind {
	case types.KindStruct:
		return !wantUnion && !wantEnum
	case types.KindUnion:
		return wantUnion && !wantEnum
	case types.KindEnum:
		return wantEnum
	default:
		return false
	}
}

func (c *Checker) qualifyTag(t types.TypeID, isConst bool) types.TypeID {
	if isConst {
		return c.info.Types.Qualify(t)
	}
	return t
}

// resolveEnum handles enum spellings. Enumerators become int constants
// in the ordinary namespace of the current scope.
func (c *Checker) resolveEnum(data *ast.TypeEnumData, sp source.Span) types.TypeID {
	var t types.TypeID

	if data.Name != source.NoStringID {
		if !data.HasBody {
			symID, found := c.info.Table.LookupTag(c.scope, data.Name)
			if !found {
				c.report(diag.KindUndeclaredIdentifierError, sp,
					"use of undeclared enum '"+c.lookupName(data.Name)+"'")
				return types.NoTypeID
			}
			sym := c.info.Table.Symbol(symID)
			if !c.tagMatches(sym.Type, false, true) {
				c.report(diag.KindConflictingTypesError, sp,
					"tag '"+c.lookupName(data.Name)+"' refers to a different kind of type",
					diag.Note{Span: sym.Span, Msg: "previously declared here"})
				return types.NoTypeID
			}
			return c.qualifyTag(sym.Type, data.Const)
		}
		if symID, found := c.info.Table.LookupTagLocal(c.scope, data.Name); found {
			sym := c.info.Table.Symbol(symID)
			if info, ok := c.info.Types.EnumInfo(sym.Type); ok && info.Complete {
				c.report(diag.KindRedefinitionError, sp,
					"redefinition of '"+c.lookupName(data.Name)+"'",
					diag.Note{Span: sym.Span, Msg: "previous definition is here"})
				return types.NoTypeID
			}
			if !c.tagMatches(sym.Type, false, true) {
				c.report(diag.KindConflictingTypesError, sp,
					"tag '"+c.lookupName(data.Name)+"' refers to a different kind of type",
					diag.Note{Span: sym.Span, Msg: "previously declared here"})
				return types.NoTypeID
			}
			t = sym.Type
		} else {
			t = c.info.Types.NewEnum(data.Name)
			c.info.Table.DeclareTag(c.scope, symbols.Symbol{
				Kind: symbols.SymTag, Name: data.Name, Type: t, Span: sp,
			})
		}
	} else {
		t = c.info.Types.NewEnum(source.NoStringID)
	}

	next := int64(0)
	for _, eid := range data.Enumerators {
		e := c.b.Types.Enumerator(eid)
		if e.Value.IsValid() {
			c.checkExpr(e.Value)
			if val, ok := c.foldInt(e.Value); ok {
				next = val
			}
		}
		existing, ok := c.info.Table.Declare(c.scope, symbols.Symbol{
			Kind:  symbols.SymEnumConst,
			Name:  e.Name,
			Type:  t,
			Span:  e.Span,
			Value: next,
		})
		if !ok {
			prev := c.info.Table.Symbol(existing)
			c.report(diag.KindRedefinitionError, e.Span,
				"redefinition of '"+c.lookupName(e.Name)+"'",
				diag.Note{Span: prev.Span, Msg: "previous definition is here"})
		}
		next++
	}
	c.info.Types.CompleteEnum(t)
	return c.qualifyTag(t, data.Const)
}
