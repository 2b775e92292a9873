package audit

import (
	"fmt"
	"io"
	"sort"

	lockstep "github.com/hmizuno/lockstep"
	"github.com/hmizuno/lockstep/contract"
	"github.com/hmizuno/lockstep/openapi"
)

// Package audit reconciles the endpoint set the contract declares against
// the endpoint set the generated client implements. It is a diagnostic: it
// never blocks generation and never exits non-zero; re-running generation is
// the only supported remediation for the drift it reports.

// Report is the ephemeral reconciliation result, regenerated on each run.
type Report struct {
	Contract []lockstep.Endpoint
	Client   []lockstep.Endpoint

	// asymmetries, keyed off {method, path}
	ContractOnly []lockstep.Endpoint
	ClientOnly   []lockstep.Endpoint
}

// Run loads both sides and computes the asymmetries.
func Run(doc *contract.Document, clientFile string) (*Report, error) {
	clientEps, err := ClientEndpoints(clientFile)
	if err != nil {
		return nil, err
	}
	return Compare(openapi.Endpoints(doc), clientEps), nil
}

// Compare diffs the two endpoint lists on {method, path}.
func Compare(contractEps, clientEps []lockstep.Endpoint) *Report {
	r := &Report{Contract: contractEps, Client: clientEps}
	clientKeys := keySet(clientEps)
	contractKeys := keySet(contractEps)
	for _, ep := range contractEps {
		if _, ok := clientKeys[key(ep)]; !ok {
			r.ContractOnly = append(r.ContractOnly, ep)
		}
	}
	for _, ep := range clientEps {
		if _, ok := contractKeys[key(ep)]; !ok {
			r.ClientOnly = append(r.ClientOnly, ep)
		}
	}
	return r
}

// InSync reports whether both sides declare the same endpoint set.
func (r *Report) InSync() bool {
	return len(r.ContractOnly) == 0 && len(r.ClientOnly) == 0
}

// HasAlias reports whether the generated client implements the alias.
func (r *Report) HasAlias(alias string) bool {
	for _, ep := range r.Client {
		if ep.Alias == alias {
			return true
		}
	}
	return false
}

// Write prints the advisory report: totals, listing grouped by alias prefix,
// asymmetries, and existence checks for the given alias names.
func (r *Report) Write(w io.Writer, checkAliases []string) {
	fmt.Fprintf(w, "contract endpoints: %d\n", len(r.Contract))
	fmt.Fprintf(w, "client endpoints:   %d\n\n", len(r.Client))

	for _, g := range groups(r.Contract) {
		fmt.Fprintf(w, "[%s]\n", g.name)
		for _, ep := range g.eps {
			fmt.Fprintf(w, "  %-6s %-32s %s\n", ep.Method, ep.Path, ep.Alias)
		}
	}

	if r.InSync() {
		fmt.Fprintf(w, "\ncontract and client are in sync\n")
	} else {
		if len(r.ContractOnly) > 0 {
			fmt.Fprintf(w, "\ndeclared by the contract, missing from the client:\n")
			for _, ep := range r.ContractOnly {
				fmt.Fprintf(w, "  %s\n", ep)
			}
		}
		if len(r.ClientOnly) > 0 {
			fmt.Fprintf(w, "\nimplemented by the client, absent from the contract:\n")
			for _, ep := range r.ClientOnly {
				fmt.Fprintf(w, "  %s\n", ep)
			}
		}
		fmt.Fprintf(w, "\nre-run generation to reconcile\n")
	}

	for _, alias := range checkAliases {
		state := "missing"
		if r.HasAlias(alias) {
			state = "present"
		}
		fmt.Fprintf(w, "alias %s: %s\n", alias, state)
	}
}

type group struct {
	name string
	eps  []lockstep.Endpoint
}

// groups partitions endpoints by alias prefix, sorted by group name, keeping
// each group's endpoints in table order.
func groups(eps []lockstep.Endpoint) []group {
	byName := map[string][]lockstep.Endpoint{}
	for _, ep := range eps {
		byName[ep.Group()] = append(byName[ep.Group()], ep)
	}
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]group, 0, len(names))
	for _, n := range names {
		out = append(out, group{name: n, eps: byName[n]})
	}
	return out
}

func key(ep lockstep.Endpoint) string { return ep.Method + " " + ep.Path }

func keySet(eps []lockstep.Endpoint) map[string]struct{} {
	out := make(map[string]struct{}, len(eps))
	for _, ep := range eps {
		out[key(ep)] = struct{}{}
	}
	return out
}
