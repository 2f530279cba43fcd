package plantuml

import (
	"fmt"
	"strings"

	"github.com/viant/phpuml/analyzer/activity"
)

// Emitter renders an activity forest as a PlantUML activity diagram
type Emitter struct{}

// New creates an emitter
func New() *Emitter {
	return &Emitter{}
}

// Emit returns the diagram document for forest, the output depends on forest only
func (e *Emitter) Emit(forest activity.Forest) []byte {
	w := &writer{}
	w.lines = append(w.lines, preamble...)
	w.line("start")
	w.render(forest, 0)
	w.lines = append(w.lines, legend...)
	w.line("stop")
	w.line("@enduml")
	return []byte(strings.Join(w.lines, "\n") + "\n")
}

type writer struct {
	lines []string
}

func (w *writer) line(text string) {
	w.lines = append(w.lines, text)
}

func (w *writer) linef(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *writer) action(prefix, stmt string) {
	w.linef("%s:%s;", prefix, Stylize(stmt))
}

func (w *writer) render(activities []*activity.Activity, indent int) {
	prefix := strings.Repeat("  ", indent)
	for _, a := range activities {
		switch {
		case a.Kind == activity.If:
			w.ifBlock(a, prefix)
		case a.Kind == activity.Switch:
			w.switchBlock(a, prefix)
		case a.Kind.IsLoop():
			w.loop(a, indent)
		case a.Kind == activity.Call:
			w.call(a, indent)
		default:
			w.action(prefix, a.Text)
		}
	}
}

func (w *writer) ifBlock(a *activity.Activity, prefix string) {
	if len(a.Branches) == 0 {
		w.linef("%sif (FALSE) then (no cases)", prefix)
		w.linef("%sendif", prefix)
		return
	}
	for i, branch := range a.Branches {
		condition := fold(branch.Condition)
		switch {
		case i == 0:
			w.linef("%sif (IF %s) then (true)", prefix, condition)
		case branch.Keyword == "else" || condition == "":
			w.linef("%selse (else)", prefix)
		default:
			w.linef("%selseif (ELSEIF %s) then (true)", prefix, condition)
		}
		w.branchBody(branch.Statements, prefix+"  ", prefix)
	}
	w.linef("%sendif", prefix)
}

// branchBody emits branch statements, break and continue end the branch
func (w *writer) branchBody(statements []string, bodyPrefix, prefix string) {
	for _, stmt := range statements {
		switch leadingWord(stmt) {
		case "break":
			w.linef("%s:BREAK;", bodyPrefix)
			w.linef("%sbreak", prefix)
			return
		case "continue":
			w.linef("%s:CONTINUE;", bodyPrefix)
			return
		}
		w.action(bodyPrefix, stmt)
	}
}

func (w *writer) switchBlock(a *activity.Activity, prefix string) {
	selector := fold(a.Condition)
	w.linef("%s:SWITCH (%s);", prefix, selector)

	var cases []*activity.Case
	var defaults []string
	for _, arm := range a.Cases {
		if arm.Default {
			defaults = append(defaults, arm.Statements...)
			continue
		}
		cases = append(cases, arm)
	}
	if len(cases) == 0 {
		w.linef("%sif (FALSE) then (no cases)", prefix)
	}
	for i, arm := range cases {
		value := fold(arm.Value)
		keyword := "elseif"
		if i == 0 {
			keyword = "if"
		}
		w.linef("%s%s (%s == %s) then (case %s)", prefix, keyword, selector, value, value)
		for _, stmt := range arm.Statements {
			w.action(prefix+"  ", stmt)
		}
	}
	w.linef("%selse (default)", prefix)
	for _, stmt := range defaults {
		w.action(prefix+"  ", stmt)
	}
	w.linef("%sendif", prefix)
}

func (w *writer) loop(a *activity.Activity, indent int) {
	prefix := strings.Repeat("  ", indent)
	keyword := a.Kind.Keyword()
	condition := fold(a.Condition)

	w.linef("%slabel %s_loop", prefix, strings.ReplaceAll(keyword, "-", "_"))
	if a.Kind == activity.DoWhile {
		w.linef("%srepeat", prefix)
	} else {
		w.linef("%swhile (%s %s) is (false)", prefix, strings.ToUpper(keyword), condition)
	}

	if len(a.Children) > 0 {
		for _, child := range a.Children {
			w.render([]*activity.Activity{child}, indent+1)
			if child.Kind == activity.Break {
				w.linef("%sbreak", prefix)
				break
			}
			if child.Kind == activity.Continue {
				break
			}
		}
	} else {
		for _, stmt := range a.Body {
			w.action(prefix+"  ", stmt)
		}
	}

	if a.Kind == activity.DoWhile {
		w.linef("%srepeat while (DO-WHILE %s)", prefix, condition)
	} else {
		w.linef("%sendwhile (true)", prefix)
	}
	w.linef("%s:exit %s loop;", prefix, keyword)
}

func (w *writer) call(a *activity.Activity, indent int) {
	prefix := strings.Repeat("  ", indent)
	w.linef("%s:Call function %s;", prefix, Stylize(a.Text))
	w.render(a.Children, indent+1)
	w.linef("%s:EXIT FUNCTION %s;", prefix, calleeName(a))
}

// calleeName returns the call text before the first parenthesis
func calleeName(a *activity.Activity) string {
	if idx := strings.Index(a.Text, "("); idx != -1 {
		return strings.TrimSpace(a.Text[:idx])
	}
	if a.Callee != "" {
		return a.Callee
	}
	return strings.TrimSpace(a.Text)
}
