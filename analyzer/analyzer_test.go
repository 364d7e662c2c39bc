package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/rxguard/analyzer/hazard"
)

// setup declares the names used by the test cases, it spans 13 lines
const setup = `import { EMPTY, Observable, of } from "rxjs";
import { first, switchMap, take, tap } from "rxjs/operators";

function ofType<T>(type: string, ...moreTypes: string[]): (source: Observable<T>) => Observable<T> {
  return source => source;
}

type Actions = Observable<any>;
const actions = of({});
const actions$ = of({});
const that = { actions };

const differentSource = of({});
`

const setupLines = 13

type expectHazard struct {
	operator  string
	line      int // line within the test code, 1-based
	column    int
	columnEnd int
}

type testCase struct {
	description string
	path        string
	code        string
	observable  string
	expect      []expectHazard
}

func TestAnalyzer_AnalyzeSourceCode(t *testing.T) {
	var testCases = []testCase{
		{
			description: "actions nested first",
			code: `const safe = actions.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY.pipe(first()))
);`,
		},
		{
			description: "actions nested take",
			code: `const safe = actions.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY.pipe(take(1)))
);`,
		},
		{
			description: "actions property nested first",
			code: `const safe = that.actions.pipe(
  ofType("DO_SOMETHING"),
  switchMap(() => EMPTY.pipe(first()))
);`,
		},
		{
			description: "epic nested take",
			code: `const safe = (action$: Actions) => action$.pipe(
  ofType("DO_SOMETHING"),
  switchMap(() => EMPTY.pipe(take(1)))
);`,
		},
		{
			description: "non-matching options",
			observable:  "foo",
			code: `const safe = actions.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  first()
);`,
		},
		{
			description: "non-matching default observable",
			code: `const effect = differentSource.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  take(1)
);`,
		},
		{
			description: "actions$ first",
			code: `const unsafe = actions$.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY),
  first()
);`,
			expect: []expectHazard{{operator: "first", line: 5, column: 3, columnEnd: 8}},
		},
		{
			description: "actions take",
			code: `const unsafe = actions.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY),
  take(1)
);`,
			expect: []expectHazard{{operator: "take", line: 5, column: 3, columnEnd: 7}},
		},
		{
			description: "actions property first",
			code: `const unsafe = that.actions.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY),
  first()
);`,
			expect: []expectHazard{{operator: "first", line: 5, column: 3, columnEnd: 8}},
		},
		{
			description: "epic take",
			code: `const unsafe = (action$: Actions) => action$.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY),
  take(1)
);`,
			expect: []expectHazard{{operator: "take", line: 5, column: 3, columnEnd: 7}},
		},
		{
			description: "matching options",
			observable:  "foo",
			code: `const unsafe = (foo: Actions) => foo.pipe(
  ofType("DO_SOMETHING"),
  tap(() => {}),
  switchMap(() => EMPTY),
  take(1)
);`,
			expect: []expectHazard{{operator: "take", line: 5, column: 3, columnEnd: 7}},
		},
		{
			description: "override ignores property access",
			observable:  "foo",
			code:        `const safe = (x: any) => x.foo.pipe(take(1));`,
		},
		{
			description: "typed parameter with arbitrary name",
			code:        `const unsafe = (source: Actions) => source.pipe(ofType("A"), take(1));`,
			expect:      []expectHazard{{operator: "take", line: 1, column: 62, columnEnd: 66}},
		},
		{
			description: "typed parameter through local alias",
			code: `type AppActions = Actions;
const unsafe = (source: AppActions) => source.pipe(first());`,
			expect: []expectHazard{{operator: "first", line: 2, column: 52, columnEnd: 57}},
		},
		{
			description: "generic and qualified annotations",
			code: `const a = (source: Actions<any>) => source.pipe(first());
const b = (source: store.Actions) => source.pipe(first());`,
			expect: []expectHazard{
				{operator: "first", line: 1, column: 49, columnEnd: 54},
				{operator: "first", line: 2, column: 50, columnEnd: 55},
			},
		},
		{
			description: "parameter of another type",
			code:        `const safe = (source: Observable<any>) => source.pipe(first());`,
		},
		{
			description: "typed parameter shadowed by untyped callback parameter",
			code:        `const safe = (source: Actions) => [1].map((source) => source.pipe(take(1)));`,
		},
		{
			description: "only the first terminal operator is reported",
			code:        `const unsafe = actions.pipe(first(), take(1));`,
			expect:      []expectHazard{{operator: "first", line: 1, column: 29, columnEnd: 34}},
		},
		{
			description: "namespaced operator",
			code:        `const unsafe = actions.pipe(op.take(1));`,
			expect:      []expectHazard{{operator: "take", line: 1, column: 32, columnEnd: 36}},
		},
		{
			description: "parenthesized receiver",
			code:        `const unsafe = (actions).pipe(take(1));`,
			expect:      []expectHazard{{operator: "take", line: 1, column: 31, columnEnd: 35}},
		},
		{
			description: "class property on this",
			code: `class Effects {
  constructor(private actions$: Actions) {}
  effect = this.actions$.pipe(ofType("A"), first());
}`,
			expect: []expectHazard{{operator: "first", line: 3, column: 44, columnEnd: 49}},
		},
		{
			description: "tracked receiver re-appearing in a nested pipeline",
			code: `const unsafe = actions.pipe(
  switchMap(() => actions$.pipe(take(1)))
);`,
			expect: []expectHazard{{operator: "take", line: 2, column: 33, columnEnd: 37}},
		},
		{
			description: "outer and nested hazards in document order",
			code: `const unsafe = actions.pipe(
  switchMap(() => actions$.pipe(take(1))),
  first()
);`,
			expect: []expectHazard{
				{operator: "first", line: 3, column: 3, columnEnd: 8},
				{operator: "take", line: 2, column: 33, columnEnd: 37},
			},
		},
		{
			description: "chained pipe on a call result",
			code:        `const safe = actions.pipe(ofType("A")).pipe(take(1));`,
		},
		{
			description: "aliased binding under override",
			observable:  "actions",
			code: `const { actions: foo } = that;
const safe = foo.pipe(take(1));`,
		},
		{
			description: "aliased binding matching override",
			observable:  "foo",
			code: `const { actions: foo } = that;
const unsafe = foo.pipe(take(1));`,
			expect: []expectHazard{{operator: "take", line: 2, column: 25, columnEnd: 29}},
		},
		{
			description: "suppressed by rxguard:ignore",
			code: `// rxguard:ignore
const unsafe = actions.pipe(take(1));`,
		},
		{
			description: "suppressed by eslint directive",
			code: `// eslint-disable-next-line rxjs/no-unsafe-first -- legacy effect
const unsafe = actions.pipe(take(1));
const other = actions.pipe(first()); // eslint-disable-line`,
		},
		{
			description: "directive for another rule",
			code: `// eslint-disable-next-line rxjs/no-ignored-subscription
const unsafe = actions.pipe(take(1));`,
			expect: []expectHazard{{operator: "take", line: 2, column: 29, columnEnd: 33}},
		},
		{
			description: "columns count utf-16 code units",
			code: `const ü = 'ü'; const unsafe = actions.pipe(take(1));
const smile = '😀'; const other = actions.pipe(take(1));`,
			expect: []expectHazard{
				{operator: "take", line: 1, column: 44, columnEnd: 48},
				{operator: "take", line: 2, column: 49, columnEnd: 53},
			},
		},
		{
			description: "javascript epic",
			path:        "epic.js",
			code:        `const epic = action$ => action$.pipe(ofType("A"), take(1));`,
			expect:      []expectHazard{{operator: "take", line: 1, column: 51, columnEnd: 55}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			path := testCase.path
			code := testCase.code
			offset := 0
			if path == "" {
				path = "effects.ts"
				code = setup + code
				offset = setupLines
			}
			config, err := NewConfig(testCase.observable)
			if !assert.Nil(t, err, testCase.description) {
				return
			}
			hazards, err := New(WithConfig(config)).AnalyzeSourceCode(context.Background(), path, []byte(code))
			if !assert.Nil(t, err, testCase.description) {
				return
			}
			var actual []expectHazard
			for _, h := range hazards {
				assert.EqualValues(t, hazard.Message, h.Message, testCase.description)
				assert.EqualValues(t, path, h.FilePath, testCase.description)
				assert.NotEmpty(t, h.Fingerprint, testCase.description)
				actual = append(actual, expectHazard{operator: h.Operator, line: h.LineNumber - offset, column: h.ColumnStart, columnEnd: h.ColumnEnd})
			}
			assert.EqualValues(t, testCase.expect, actual, testCase.description)
		})
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	code := []byte(setup + `const a = actions.pipe(first());
const b = (source: Actions) => source.pipe(switchMap(() => actions$.pipe(take(1))), take(2));
`)
	srv := New()
	first, err := srv.AnalyzeSourceCode(context.Background(), "effects.ts", code)
	assert.Nil(t, err)
	second, err := srv.AnalyzeSourceCode(context.Background(), "effects.ts", code)
	assert.Nil(t, err)
	assert.Len(t, first, 3)
	assert.EqualValues(t, first, second)
}

func TestAnalyzer_MalformedSource(t *testing.T) {
	sources := []string{
		`actions.pipe(take(1)`,
		`const = actions.pipe(`,
		`.pipe(take(1));`,
		strings.Repeat("(", 64),
		``,
	}
	for _, source := range sources {
		assert.NotPanics(t, func() {
			_, err := New().AnalyzeSourceCode(context.Background(), "broken.ts", []byte(source))
			assert.Nil(t, err, source)
		}, source)
	}
}

func TestAnalyzer_WithSuppression(t *testing.T) {
	code := []byte(`// rxguard:ignore
const unsafe = actions.pipe(take(1));`)
	hazards, err := New(WithSuppression(false)).AnalyzeSourceCode(context.Background(), "effects.ts", code)
	assert.Nil(t, err)
	assert.Len(t, hazards, 1)
}

func TestAnalyzer_Fingerprint(t *testing.T) {
	ctx := context.Background()
	code := []byte(`const unsafe = actions.pipe(take(1));`)
	reformatted := []byte("const unsafe = actions.pipe(\n\ttake(1)\n);")

	fingerprint := func(srv *Analyzer, path string, code []byte) string {
		hazards, err := srv.AnalyzeSourceCode(ctx, path, code)
		if !assert.Nil(t, err, path) || !assert.Len(t, hazards, 1, path) {
			return ""
		}
		return hazards[0].Fingerprint
	}

	srv := New()
	expect := fingerprint(srv, "src/effects.ts", code)
	assert.Equal(t, expect, fingerprint(srv, "./src/effects.ts", code))
	assert.Equal(t, expect, fingerprint(srv, "src/../src/effects.ts", reformatted))
	assert.NotEqual(t, expect, fingerprint(srv, "src/other.ts", code))

	local := New(WithProjectRoot("src"))
	assert.Equal(t, hazard.Fingerprint("effects.ts", "take", []byte("actions.pipe(take(1))")), fingerprint(local, "src/effects.ts", code))
	assert.Equal(t, fingerprint(local, "src/effects.ts", code), fingerprint(local, "./src/effects.ts", code))

	first := New(WithProjectRoot("mem://localhost/checkout-a"))
	second := New(WithProjectRoot("mem://localhost/checkout-b/"))
	assert.Equal(t,
		fingerprint(first, "mem://localhost/checkout-a/src/effects.ts", code),
		fingerprint(second, "mem://localhost/checkout-b/src/effects.ts", code))
}
