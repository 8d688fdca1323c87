package main

import (
	"testing"

	"github.com/vkuzmin/basil/lang"
)

func TestEchoUnwrapsSingleStatement(t *testing.T) {
	single := lang.NewList([]*lang.Value{lang.NewString("hi")})
	if got, want := echo(single), `"hi"`; got != want {
		t.Errorf("echo(single) => %s, want %s", got, want)
	}

	multi := lang.NewList([]*lang.Value{lang.NewInt(1), lang.NewInt(2)})
	if got, want := echo(multi), "[1, 2]"; got != want {
		t.Errorf("echo(multi) => %s, want %s", got, want)
	}

	if got, want := echo(lang.NewInt(7)), "7"; got != want {
		t.Errorf("echo(number) => %s, want %s", got, want)
	}
}
