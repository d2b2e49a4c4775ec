// Package mona reads and writes the MONA DFA text format (§6): the only
// persisted representation a translated automaton ever takes. A file is a
// handful of whitespace-separated header fields followed by a flat,
// position-indexed table of shared BDD nodes - the same "one node table,
// many root pointers" structure dfa.DFA already uses internally, so Write
// is mostly a matter of walking each state's transition diagram once and
// interning the nodes it visits, and Read is the same walk backwards.
package mona

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/errs"
	"github.com/whitemech/lydia-sub000/internal/bdd"
)

// Write serializes d in MONA DFA text format.
//
// dfa.DFA allows a state's transition function to leave some assignments
// undefined (dfa.Sink, meaning "no successor"), but a MONA automaton is
// always complete - every state has a successor for every assignment. So
// Write first checks whether Sink is reachable from any state and, if so,
// appends one extra non-accepting trap state that every Sink edge is
// rewritten to target and that loops to itself on everything; this keeps
// the written file a valid, complete MONA automaton without changing the
// language d accepts.
func Write(w io.Writer, d *dfa.DFA) error {
	mgr := d.Manager()
	k := d.NStates()

	trans := make([]bdd.BDD, k)
	needsTrap := false
	for s := 0; s < k; s++ {
		trans[s] = d.Transition(s)
		for _, t := range mgr.Terminals(trans[s]) {
			if t == dfa.Sink {
				needsTrap = true
			}
		}
	}

	trapID := k
	if needsTrap {
		for s := 0; s < k; s++ {
			trans[s] = mgr.MapTerminals(trans[s], func(t int) int {
				if t == dfa.Sink {
					return trapID
				}
				return t
			})
		}
		k++
	}

	index := map[bdd.BDD]int{}
	var table []bdd.BDD
	var intern func(b bdd.BDD) int
	intern = func(b bdd.BDD) int {
		if id, ok := index[b]; ok {
			return id
		}
		if _, isTerm := b.IsTerminal(); !isTerm {
			intern(b.Lo())
			intern(b.Hi())
		}
		id := len(table)
		index[b] = id
		table = append(table, b)
		return id
	}

	behaviour := make([]int, k)
	for s := 0; s < k-boolToInt(needsTrap); s++ {
		behaviour[s] = intern(trans[s])
	}
	if needsTrap {
		trapTrans := mgr.Terminal(trapID)
		behaviour[trapID] = intern(trapTrans)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "number of variables %d\n", d.NVars())
	fmt.Fprintf(bw, "variables %s\n", strings.Join(d.VarNames(), " "))
	fmt.Fprintf(bw, "states %d\n", k)
	fmt.Fprintf(bw, "initial %d\n", d.Initial())
	fmt.Fprintf(bw, "bdd nodes %d\n", len(table))

	finals := make([]string, k)
	for s := 0; s < k; s++ {
		if s == trapID {
			finals[s] = "-1"
			continue
		}
		if d.IsFinal(s) {
			finals[s] = "1"
		} else {
			finals[s] = "-1"
		}
	}
	fmt.Fprintf(bw, "final %s\n", strings.Join(finals, " "))

	behStrs := make([]string, k)
	for s := 0; s < k; s++ {
		behStrs[s] = strconv.Itoa(behaviour[s])
	}
	fmt.Fprintf(bw, "behaviour %s\n", strings.Join(behStrs, " "))

	fmt.Fprintln(bw, "bdd:")
	for _, n := range table {
		if t, isTerm := n.IsTerminal(); isTerm {
			fmt.Fprintf(bw, "-1 %d 0\n", t)
			continue
		}
		fmt.Fprintf(bw, "%d %d %d\n", n.Var(), index[n.Lo()], index[n.Hi()])
	}
	fmt.Fprintln(bw, "end")

	return bw.Flush()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// reader tokenizes a MONA file as a flat whitespace-separated stream:
// Parsing is permissive on whitespace but strict on key ordering (§6), so
// neither line boundaries nor field counts on a given line carry meaning -
// only the fixed sequence of keywords and value counts does.
type reader struct {
	sc  *bufio.Scanner
	cur string
	eof bool
}

func newReader(r io.Reader) *reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	rd := &reader{sc: sc}
	rd.advance()
	return rd
}

func (r *reader) advance() {
	if r.sc.Scan() {
		r.cur = r.sc.Text()
	} else {
		r.eof = true
	}
}

func (r *reader) token() (string, error) {
	if r.eof {
		return "", errs.IO("mona: unexpected end of file")
	}
	t := r.cur
	r.advance()
	return t, nil
}

func (r *reader) expect(lit string) error {
	t, err := r.token()
	if err != nil {
		return err
	}
	if t != lit {
		return errs.IO(fmt.Sprintf("mona: expected %q, got %q", lit, t))
	}
	return nil
}

func (r *reader) expectInt() (int, error) {
	t, err := r.token()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(t)
	if convErr != nil {
		return 0, errs.IO(fmt.Sprintf("mona: expected integer, got %q", t), convErr)
	}
	return n, nil
}

// Read parses a MONA DFA text file.
//
// The bdd node table (§6) is a flat array indexed by line position; a
// node's "low"/"high" fields are indices into that same array. Write only
// ever emits a node after both of its children, and Read assumes any file
// it parses does too - every node reference it resolves has already been
// built by the time it is looked up, so the table can be built in a
// single forward pass.
func Read(r io.Reader) (*dfa.DFA, error) {
	rd := newReader(r)

	if err := rd.expect("number"); err != nil {
		return nil, err
	}
	if err := rd.expect("of"); err != nil {
		return nil, err
	}
	if err := rd.expect("variables"); err != nil {
		return nil, err
	}
	n, err := rd.expectInt()
	if err != nil {
		return nil, err
	}

	if err := rd.expect("variables"); err != nil {
		return nil, err
	}
	varNames := make([]string, n)
	for i := 0; i < n; i++ {
		name, err := rd.token()
		if err != nil {
			return nil, err
		}
		varNames[i] = name
	}

	if err := rd.expect("states"); err != nil {
		return nil, err
	}
	k, err := rd.expectInt()
	if err != nil {
		return nil, err
	}

	if err := rd.expect("initial"); err != nil {
		return nil, err
	}
	initial, err := rd.expectInt()
	if err != nil {
		return nil, err
	}

	if err := rd.expect("bdd"); err != nil {
		return nil, err
	}
	if err := rd.expect("nodes"); err != nil {
		return nil, err
	}
	m, err := rd.expectInt()
	if err != nil {
		return nil, err
	}

	if err := rd.expect("final"); err != nil {
		return nil, err
	}
	finals := make([]int, k)
	for i := 0; i < k; i++ {
		v, err := rd.expectInt()
		if err != nil {
			return nil, err
		}
		finals[i] = v
	}

	if err := rd.expect("behaviour"); err != nil {
		return nil, err
	}
	behaviour := make([]int, k)
	for i := 0; i < k; i++ {
		v, err := rd.expectInt()
		if err != nil {
			return nil, err
		}
		behaviour[i] = v
	}

	if err := rd.expect("bdd:"); err != nil {
		return nil, err
	}

	mgr := bdd.NewManager()
	table := make([]bdd.BDD, m)
	for i := 0; i < m; i++ {
		col1, err := rd.expectInt()
		if err != nil {
			return nil, err
		}
		col2, err := rd.expectInt()
		if err != nil {
			return nil, err
		}
		col3, err := rd.expectInt()
		if err != nil {
			return nil, err
		}
		if col1 == -1 {
			table[i] = mgr.Terminal(col2)
			continue
		}
		if col2 < 0 || col2 >= i || col3 < 0 || col3 >= i {
			return nil, errs.IO(fmt.Sprintf("mona: bdd node %d references a node not yet defined", i))
		}
		table[i] = mgr.Node(col1, table[col2], table[col3])
	}

	if err := rd.expect("end"); err != nil {
		return nil, err
	}

	d := dfa.New(mgr, varNames)
	for s := 0; s < k; s++ {
		accepting := finals[s] == 1
		d.AddState(accepting)
	}
	d.SetInitial(initial)
	for s := 0; s < k; s++ {
		if behaviour[s] < 0 || behaviour[s] >= m {
			return nil, errs.IO(fmt.Sprintf("mona: state %d's behaviour index %d is out of range", s, behaviour[s]))
		}
		d.SetTransition(s, table[behaviour[s]])
	}

	return d, nil
}
