package kubectl

import (
	"context"
	"fmt"
	"strings"
)

// Fake is an in-memory Client for tests. Zero value is usable; populate
// the fields a test needs.
type Fake struct {
	ContextList   []string
	NamespaceList []string
	Context       string
	Namespace     string

	// Err, when set, is returned by every method.
	Err error

	// RunCalls records the args of each Run invocation.
	RunCalls [][]string
	// RunOutput is written to stdout on Run.
	RunOutput string
}

var _ Client = (*Fake)(nil)

func (f *Fake) Contexts(context.Context) ([]string, error) {
	return f.ContextList, f.Err
}

func (f *Fake) CurrentContext(context.Context) (string, error) {
	return f.Context, f.Err
}

func (f *Fake) UseContext(_ context.Context, name string) error {
	if f.Err != nil {
		return f.Err
	}
	for _, c := range f.ContextList {
		if c == name {
			f.Context = name
			return nil
		}
	}
	return fmt.Errorf("no context exists with the name %q", name)
}

func (f *Fake) Namespaces(context.Context) ([]string, error) {
	return f.NamespaceList, f.Err
}

func (f *Fake) CurrentNamespace(context.Context) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if f.Namespace == "" {
		return "default", nil
	}
	return f.Namespace, nil
}

func (f *Fake) SetNamespace(_ context.Context, name string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Namespace = name
	return nil
}

func (f *Fake) Run(_ context.Context, args []string, stdio Stdio) error {
	if f.Err != nil {
		return f.Err
	}
	f.RunCalls = append(f.RunCalls, args)
	if f.RunOutput != "" && stdio.Out != nil {
		fmt.Fprint(stdio.Out, f.RunOutput)
		if !strings.HasSuffix(f.RunOutput, "\n") {
			fmt.Fprintln(stdio.Out)
		}
	}
	return nil
}
