package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	const id = "6f1c0e4a-8d2b-4f7e-9a51-0c3d2e1b7a90"

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"eisen"},
			want: []string{"eisen"},
		},
		{
			name: "full id first token",
			in:   []string{"eisen", id},
			want: []string{"eisen", "tasks", "show", id},
		},
		{
			name: "short prefix",
			in:   []string{"eisen", "6f1c0e4a"},
			want: []string{"eisen", "tasks", "show", "6f1c0e4a"},
		},
		{
			name: "after value flag",
			in:   []string{"eisen", "--db", "./tmp.sqlite", id},
			want: []string{"eisen", "--db", "./tmp.sqlite", "tasks", "show", id},
		},
		{
			name: "after equals flag",
			in:   []string{"eisen", "--backend=memory", id},
			want: []string{"eisen", "--backend=memory", "tasks", "show", id},
		},
		{
			name: "after bool flag",
			in:   []string{"eisen", "--pretty", id},
			want: []string{"eisen", "--pretty", "tasks", "show", id},
		},
		{
			name: "after double dash",
			in:   []string{"eisen", "--db", "./tmp.sqlite", "--", id},
			want: []string{"eisen", "--db", "./tmp.sqlite", "--", "tasks", "show", id},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"eisen", "tasks", "show", id},
			want: []string{"eisen", "tasks", "show", id},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"eisen", "wat"},
			want: []string{"eisen", "wat"},
		},
		{
			name: "short hex word not rewritten",
			in:   []string{"eisen", "cafe"},
			want: []string{"eisen", "cafe"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectTaskLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
