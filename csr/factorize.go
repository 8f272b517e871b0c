package csr

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

// A register name with a single decimal index, such as "pmpaddr12" or
// "mhpmcounter3h".
var indexedNamePattern = regexp.MustCompile(`^(\D*?)(\d+)(\D*)$`)

type familyMember struct {
	pos   int // position in the source list
	index int
	addr  uint64
	sig   string
	src   Source
}

type familyRun struct {
	prefix, suffix string
	members        []familyMember
}

func (r *familyRun) source() Source {
	first, last := r.members[0], r.members[len(r.members)-1]
	name := fmt.Sprintf("%s%d-%d%s", r.prefix, first.index, last.index, r.suffix)
	addr := fmt.Sprintf("%#x-%#x", first.addr, last.addr)
	return Source{
		Name: name,
		Node: yamlnode.WithString(first.src.Node, "address", addr),
	}
}

// Factorize folds indexed register families into single representative
// nodes. Registers named prefix<N>suffix are grouped when their indices and
// addresses are both consecutive and they share the same layout (privilege
// mode, RV32/RV64 accessibility and field bit positions). The group is
// replaced, at the position of its first member, by the first member's node
// renamed to prefix<first>-<last>suffix with an address range. Everything
// else passes through in order.
func Factorize(srcs []Source) []Source {
	byStem := make(map[string][]familyMember)
	var stems []string
	for pos, src := range srcs {
		m := indexedNamePattern.FindStringSubmatch(src.Name)
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		addrNode := yamlnode.Lookup(src.Node, "address")
		if !yamlnode.IsInt(addrNode) {
			continue
		}
		addr, ok := yamlnode.Uint(addrNode)
		if !ok {
			continue
		}
		stem := m[1] + "\x00" + m[3]
		if _, seen := byStem[stem]; !seen {
			stems = append(stems, stem)
		}
		byStem[stem] = append(byStem[stem], familyMember{
			pos:   pos,
			index: index,
			addr:  addr,
			sig:   layoutSignature(src.Node),
			src:   src,
		})
	}

	runAt := make(map[int]*familyRun) // keyed by the position where the run is emitted
	folded := make(map[int]bool)
	for _, stem := range stems {
		prefix, suffix := partition(stem, "\x00")
		members := byStem[stem]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].index < members[j].index
		})
		for _, run := range splitRuns(members) {
			if len(run) < 2 {
				continue
			}
			fr := &familyRun{prefix: prefix, suffix: suffix, members: run}
			emitAt := run[0].pos
			for _, m := range run {
				folded[m.pos] = true
				if m.pos < emitAt {
					emitAt = m.pos
				}
			}
			runAt[emitAt] = fr
			logger.Debugf("folded %d registers into %s", len(run), fr.source().Name)
		}
	}

	ret := make([]Source, 0, len(srcs))
	for pos, src := range srcs {
		if run, ok := runAt[pos]; ok {
			ret = append(ret, run.source())
			continue
		}
		if folded[pos] {
			continue
		}
		ret = append(ret, src)
	}
	return ret
}

func splitRuns(members []familyMember) [][]familyMember {
	var runs [][]familyMember
	var cur []familyMember
	for _, m := range members {
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			if m.index != prev.index+1 || m.addr != prev.addr+1 || m.sig != prev.sig {
				runs = append(runs, cur)
				cur = nil
			}
		}
		cur = append(cur, m)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// layoutSignature summarises what must match for two registers to be
// documented by one template.
func layoutSignature(n *yaml.Node) string {
	var b strings.Builder
	b.WriteString(yamlnode.String(yamlnode.Lookup(n, "priv_mode")))
	for _, name := range []string{"rv32", "rv64"} {
		v := yamlnode.Lookup(n, name)
		fmt.Fprintf(&b, "|%s:%t:", name, yamlnode.Truthy(yamlnode.Lookup(v, "accessible")))
		fields := yamlnode.Items(yamlnode.Lookup(v, "fields"))
		if len(fields) == 0 {
			b.WriteString(bitsSignature(v))
			continue
		}
		for _, f := range fields {
			switch f.Kind {
			case yaml.ScalarNode:
				b.WriteString(bitsSignature(yamlnode.Lookup(v, f.Value)))
			case yaml.SequenceNode:
				for _, r := range reservedMarkers(f) {
					fmt.Fprintf(&b, "R%d-%d,", r.MSB, r.LSB)
				}
			}
		}
	}
	return b.String()
}

func bitsSignature(n *yaml.Node) string {
	msb, _ := yamlnode.Int(yamlnode.Lookup(n, "msb"))
	lsb, _ := yamlnode.Int(yamlnode.Lookup(n, "lsb"))
	return fmt.Sprintf("%d-%d,", msb, lsb)
}
