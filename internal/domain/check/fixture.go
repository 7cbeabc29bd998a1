package check

import "github.com/mockguard/mockguard/internal/domain"

// BodyFunc loads the response body properties of the fixture being checked.
// It is only called once the fixture has matched a path.
type BodyFunc func() *domain.BodyProperties

// Pipeline runs every check for one fixture in a fixed order: url match,
// method, then parameter presence and type per declared parameter, then
// response property presence and type.
type Pipeline struct {
	path          Validator[PathQuery, PathMatch]
	method        Validator[MethodQuery, domain.Finding]
	paramRequired Validator[ParamQuery, domain.Finding]
	paramType     Validator[ParamQuery, domain.Finding]
	propRequired  Validator[PropertyQuery, []domain.Finding]
	propType      Validator[PropertyQuery, []domain.Finding]
	queryOnly     bool
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// QueryParamsOnly limits parameter checks to query parameters and parameters
// without a location. Path, header and cookie parameters are then left out,
// since WireMock query matchers cannot supply them.
func QueryParamsOnly(enabled bool) PipelineOption {
	return func(p *Pipeline) { p.queryOnly = enabled }
}

// NewPipeline builds a pipeline that checks every declared parameter of the
// matched operation against the mock's query matchers.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		path:          PathMatcher{},
		method:        MethodValidator{},
		paramRequired: ParamRequiredValidator{},
		paramType:     ParamTypeValidator{},
		propRequired:  PropertyRequiredValidator{},
		propType:      PropertyTypeValidator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run checks fx against contract. Incomplete fixtures produce no findings.
func (p *Pipeline) Run(contract *domain.Contract, fx domain.Fixture, body BodyFunc) []domain.Finding {
	if !fx.Complete() {
		return nil
	}

	var findings []domain.Finding
	add := func(fs ...domain.Finding) {
		for _, f := range fs {
			if f.IsZero() {
				continue
			}
			f.Fixture = fx.Name
			findings = append(findings, f)
		}
	}

	match, err := p.path.Validate(PathQuery{Paths: contract.Paths, Pattern: fx.Request.URLPattern})
	if err != nil {
		add(errorFinding(domain.CheckURLMatch, fx.Request.URLPattern, err))
		return findings
	}
	add(match.Finding)
	if !match.Matched() {
		return findings
	}
	item := match.Item

	methodFinding, err := p.method.Validate(MethodQuery{Path: item, Method: fx.Request.Method})
	if err != nil {
		add(errorFinding(domain.CheckMethod, MethodFindingName(item, fx.Request.Method), err))
		return findings
	}
	add(methodFinding)

	op := selectOperation(item, fx.Request.Method)
	if op == nil {
		return findings
	}
	opID := op.Identifier(item.Template)

	for _, param := range op.Parameters {
		if p.queryOnly && param != nil && !param.IsQuery() {
			continue
		}
		q := ParamQuery{Operation: opID, Param: param, Query: fx.Request.QueryParameters}
		add(p.runParam(p.paramRequired, domain.CheckParamRequired, q))
		add(p.runParam(p.paramType, domain.CheckParamType, q))
	}

	var props *domain.BodyProperties
	if body != nil {
		props = body()
	}
	pq := PropertyQuery{Operation: opID, Responses: op.Responses, Body: props}
	add(p.runProperties(p.propRequired, domain.CheckResponsePropertyRequired, pq)...)
	add(p.runProperties(p.propType, domain.CheckResponsePropertyType, pq)...)

	return findings
}

func (p *Pipeline) runParam(v Validator[ParamQuery, domain.Finding], kind domain.CheckKind, q ParamQuery) domain.Finding {
	f, err := v.Validate(q)
	if err != nil {
		return errorFinding(kind, q.name(), err)
	}
	return f
}

func (p *Pipeline) runProperties(v Validator[PropertyQuery, []domain.Finding], kind domain.CheckKind, q PropertyQuery) []domain.Finding {
	fs, err := v.Validate(q)
	if err != nil {
		return []domain.Finding{errorFinding(kind, domain.ResponseName(q.Operation, "*"), err)}
	}
	return fs
}

// selectOperation picks the operation declared for the mock's method, falling
// back to the first declared operation.
func selectOperation(item *domain.PathItem, method string) *domain.Operation {
	if m, err := domain.ParseMethod(method); err == nil {
		if op := item.Operation(m); op != nil {
			return op
		}
	}
	if len(item.Operations) == 0 {
		return nil
	}
	return &item.Operations[0]
}
