package pin

import (
	"strings"
	"testing"
)

// parámetros bajos para que la suite corra rápido
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestValidFormat(t *testing.T) {
	valids := []string{"000000", "123456", "999999"}
	for _, v := range valids {
		if !ValidFormat(v) {
			t.Fatalf("esperado válido: %q", v)
		}
	}

	invalids := []string{"", "12345", "1234567", "12345a", "12 456", "12345é"}
	for _, v := range invalids {
		if ValidFormat(v) {
			t.Fatalf("esperado inválido: %q", v)
		}
	}
}

func TestHashAndVerify(t *testing.T) {
	phc, err := Hash(testParams, "123456")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("formato PHC inesperado: %q", phc)
	}

	if !Verify("123456", phc) {
		t.Fatal("el código correcto debe verificar")
	}
	if Verify("123457", phc) {
		t.Fatal("un código distinto no debe verificar")
	}
	if Verify("", phc) {
		t.Fatal("código vacío no debe verificar")
	}
}

func TestHash_RejectsBadFormat(t *testing.T) {
	if _, err := Hash(testParams, "12345"); err == nil {
		t.Fatal("esperado error con código corto")
	}
	if _, err := Hash(testParams, "abcdef"); err == nil {
		t.Fatal("esperado error con código no numérico")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, err := Hash(testParams, "123456")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Hash(testParams, "123456")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("dos hashes del mismo código deben diferir por el salt")
	}
	if !Verify("123456", a) || !Verify("123456", b) {
		t.Fatal("ambos hashes deben verificar el mismo código")
	}
}

func TestVerify_MalformedPHC(t *testing.T) {
	malformed := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$ZGs",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$ZGs",
		"$argon2id$v=19$m=8,t=1,p=1$!!badb64$ZGs",
		"$argon2id$v=19$garbage$c2FsdA$ZGs",
	}
	for _, phc := range malformed {
		if Verify("123456", phc) {
			t.Fatalf("PHC malformado no debe verificar: %q", phc)
		}
	}
}
