package linker

type Args struct {
	Output string
	// UniformScanStart makes the mergeability check start at symbol index 1,
	// the same index the symbol table rewrite starts at. By default the
	// check starts at index 2.
	UniformScanStart bool
}

type Context struct {
	Args Args
}

func NewContext() *Context {
	return &Context{
		Args{
			Output: "out.ro",
		},
	}
}

const rewriteScanStart = 1

func (ctx *Context) resolverScanStart() int {
	if ctx.Args.UniformScanStart {
		return rewriteScanStart
	}
	return 2
}
