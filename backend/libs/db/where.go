package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Where accumulates AND-ed predicates with positional arguments. Clauses use `?` as the
// placeholder; Where renumbers them to Postgres `$n` in order of addition.
type Where struct {
	clauses []string
	args    []interface{}
}

// Add appends a clause. The number of `?` in clause must match len(args).
func (w *Where) Add(clause string, args ...interface{}) {
	if n := strings.Count(clause, "?"); n != len(args) {
		panic(fmt.Sprintf("db: clause %q has %d placeholders but %d args", clause, n, len(args)))
	}
	var b strings.Builder
	for _, r := range clause {
		if r == '?' {
			w.args = append(w.args, args[0])
			args = args[1:]
			b.WriteString("$" + strconv.Itoa(len(w.args)))
			continue
		}
		b.WriteRune(r)
	}
	w.clauses = append(w.clauses, b.String())
}

// AddIf appends the clause only when cond holds.
func (w *Where) AddIf(cond bool, clause string, args ...interface{}) {
	if cond {
		w.Add(clause, args...)
	}
}

// SQL renders " WHERE a AND b" or an empty string.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the collected arguments.
func (w *Where) Args() []interface{} {
	out := make([]interface{}, len(w.args))
	copy(out, w.args)
	return out
}

// Placeholder returns the `$n` for an argument appended after the current ones.
func (w *Where) Placeholder(offset int) string {
	return "$" + strconv.Itoa(len(w.args)+offset)
}

// EscapeLike escapes LIKE metacharacters so user input matches literally with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Contains builds a %s% LIKE pattern from user input.
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}
