package slug

import (
	"regexp"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Prueba A", "prueba-a"},
		{"Matemáticas Fase 1 - 2026", "matemticas-fase-1-2026"},
		{"  Policía Nacional  ", "polica-nacional"},
		{"Razonamiento_Lógico", "razonamiento-lgico"},
		{"---Tropa---", "tropa"},
		{"Física (Nivel II)", "fsica-nivel-ii"},
		{"a   b\t c", "a-b-c"},
		{"2026", "2026"},
		{"¿Qué? ¡Ya!", "qu-ya"},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeShape(t *testing.T) {
	// For any input, the output must contain only lowercase alphanumerics and
	// single hyphens, with no hyphen at either edge.
	shape := regexp.MustCompile(`^$|^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"", "   ", "----", "___", "Ñandú", "A-_-B", "x__y--z", "ÁÉÍÓÚ",
		"Simulador de Ingreso: Bomberos 2a Convocatoria",
	}
	for _, in := range inputs {
		got := Make(in)
		if !shape.MatchString(got) {
			t.Errorf("Make(%q) = %q, not slug-shaped", in, got)
		}
	}
}
