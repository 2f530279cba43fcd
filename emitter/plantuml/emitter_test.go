package plantuml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phpuml/analyzer/activity"
)

// body returns the diagram lines between the start marker and the legend
func body(t *testing.T, diagram []byte) []string {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(string(diagram), "\n"), "\n")
	start, end := -1, -1
	for i, line := range lines {
		switch line {
		case "start":
			if start == -1 {
				start = i
			}
		case "legend":
			end = i
		}
	}
	require.True(t, start != -1 && end > start, "malformed diagram:\n%s", diagram)
	return lines[start+1 : end]
}

func TestEmitter_Emit(t *testing.T) {
	tests := []struct {
		name     string
		forest   activity.Forest
		expected []string
	}{
		{
			name: "if else",
			forest: activity.Forest{
				{Kind: activity.Statement, Text: "$a = 5;"},
				{
					Kind: activity.If,
					Text: "if ($a > 0) { echo $a; } else { echo 0; }",
					Branches: []*activity.Branch{
						{Keyword: "if", Condition: "$a > 0", Statements: []string{"echo $a;"}},
						{Keyword: "else", Statements: []string{"echo 0;"}},
					},
					Children: []*activity.Activity{{Kind: activity.Statement, Text: "echo $a;"}},
				},
			},
			expected: []string{
				":$a = 5;",
				"if (IF $a > 0) then (true)",
				"  :echo $a;",
				"else (else)",
				"  :echo 0;",
				"endif",
			},
		},
		{
			name: "if elseif with break",
			forest: activity.Forest{
				{
					Kind: activity.If,
					Branches: []*activity.Branch{
						{Keyword: "if", Condition: "$a > 1", Statements: []string{"echo 1;", "break;", "echo 2;"}},
						{Keyword: "elseif", Condition: "$a > 0", Statements: []string{"continue;", "echo 3;"}},
					},
				},
			},
			expected: []string{
				"if (IF $a > 1) then (true)",
				"  :echo 1;",
				"  :BREAK;",
				"break",
				"elseif (ELSEIF $a > 0) then (true)",
				"  :CONTINUE;",
				"endif",
			},
		},
		{
			name:   "if without branches",
			forest: activity.Forest{{Kind: activity.If, Text: "if"}},
			expected: []string{
				"if (FALSE) then (no cases)",
				"endif",
			},
		},
		{
			name: "switch",
			forest: activity.Forest{
				{
					Kind:      activity.Switch,
					Condition: "$k",
					Cases: []*activity.Case{
						{Value: "1", Statements: []string{`echo "one";`, "break;"}},
						{Default: true, Statements: []string{`echo "other";`}},
						{Value: "2", Statements: []string{`echo "two";`}},
					},
				},
			},
			expected: []string{
				":SWITCH ($k);",
				"if ($k == 1) then (case 1)",
				`  :echo \"one\";`,
				"  :BREAK;",
				"elseif ($k == 2) then (case 2)",
				`  :echo \"two\";`,
				"else (default)",
				`  :echo \"other\";`,
				"endif",
			},
		},
		{
			name:   "switch without cases",
			forest: activity.Forest{{Kind: activity.Switch, Condition: "$k"}},
			expected: []string{
				":SWITCH ($k);",
				"if (FALSE) then (no cases)",
				"else (default)",
				"endif",
			},
		},
		{
			name: "for loop with break child",
			forest: activity.Forest{
				{
					Kind:      activity.For,
					Condition: "$i = 0; $i < 3; $i++",
					Body:      []string{"echo $i;", "break;", "echo 2;"},
					Children: []*activity.Activity{
						{Kind: activity.Statement, Text: "echo $i;"},
						{Kind: activity.Break, Text: "break;"},
					},
				},
			},
			expected: []string{
				"label for_loop",
				"while (FOR $i = 0; $i < 3; $i++) is (false)",
				"  :echo $i;",
				"  :BREAK;",
				"break",
				"endwhile (true)",
				":exit for loop;",
			},
		},
		{
			name: "while loop with continue child",
			forest: activity.Forest{
				{
					Kind:      activity.While,
					Condition: "$a",
					Children: []*activity.Activity{
						{Kind: activity.Continue, Text: "continue;"},
						{Kind: activity.Statement, Text: "echo 1;"},
					},
				},
			},
			expected: []string{
				"label while_loop",
				"while (WHILE $a) is (false)",
				"  :CONTINUE;",
				"endwhile (true)",
				":exit while loop;",
			},
		},
		{
			name: "do while falls back to body text",
			forest: activity.Forest{
				{Kind: activity.DoWhile, Condition: "$i > 0", Body: []string{"$i--;"}},
			},
			expected: []string{
				"label do_while_loop",
				"repeat",
				"  :$i--;",
				"repeat while (DO-WHILE $i > 0)",
				":exit do-while loop;",
			},
		},
		{
			name: "foreach nested in call",
			forest: activity.Forest{
				{
					Kind:   activity.Call,
					Text:   "walk($list)",
					Callee: "walk",
					Children: []*activity.Activity{
						{
							Kind:      activity.Foreach,
							Condition: "$items as $item",
							Children:  []*activity.Activity{{Kind: activity.Statement, Text: "echo $item;"}},
						},
					},
				},
			},
			expected: []string{
				":Call function walk($list);",
				"  label foreach_loop",
				"  while (FOREACH $items as $item) is (false)",
				"    :echo $item;",
				"  endwhile (true)",
				"  :exit foreach loop;",
				":EXIT FUNCTION walk;",
			},
		},
	}

	emitter := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := body(t, emitter.Emit(tc.forest))
			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("diagram mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmitter_Emit_Document(t *testing.T) {
	emitter := New()
	forest := activity.Forest{{Kind: activity.Statement, Text: "echo 1;"}}
	diagram := emitter.Emit(forest)

	text := string(diagram)
	assert.True(t, strings.HasPrefix(text, "@startuml\n"))
	assert.True(t, strings.HasSuffix(text, "end legend\nstop\n@enduml\n"))
	assert.Equal(t, 1, strings.Count(text, "\nstart\n"))
	assert.Equal(t, diagram, emitter.Emit(forest))

	empty := body(t, emitter.Emit(nil))
	assert.Empty(t, empty)
}

func TestStylize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "echo $a;", expected: "echo $a"},
		{input: "break;", expected: "BREAK"},
		{input: "continue;", expected: "CONTINUE"},
		{input: "if ($a) { echo 1; }", expected: "IF ($a) { echo 1; }"},
		{input: "elseif ($a)", expected: "ELSE IF ($a)"},
		{input: "foreach ($a as $b) {}", expected: "FOREACH ($a as $b) {}"},
		{input: "for ($i = 0; $i < 1; $i++) {}", expected: "FOR ($i = 0; $i < 1; $i++) {}"},
		{input: "ifx = 1;", expected: "ifx = 1"},
		{input: `echo "hi";`, expected: `echo \"hi\"`},
		{input: "$a = [\n1];", expected: "$a = [ 1]"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, Stylize(tc.input))
		})
	}
}

func TestCalleeName(t *testing.T) {
	assert.Equal(t, "f", calleeName(&activity.Activity{Text: "f(1, 2)"}))
	assert.Equal(t, "g", calleeName(&activity.Activity{Text: "", Callee: "g"}))
}
