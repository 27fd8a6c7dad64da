package inventory_test

import (
	"testing"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/stretchr/testify/require"
)

func TestDeriveRoute_Table(t *testing.T) {
	tests := []struct {
		name         string
		validacao    inventory.Validation
		enviar       bool
		visitado     bool
		wantEnviar   bool
		wantVisitado bool
	}{
		{"sim routes", inventory.ValidationYes, false, false, true, false},
		{"pendente routes", inventory.ValidationPending, false, true, true, true},
		{"manual kept", inventory.ValidationNo, true, true, true, true},
		{"blank off resets visit", inventory.ValidationBlank, false, true, false, false},
		{"nao off resets visit", inventory.ValidationNo, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enviar, visitado := inventory.DeriveRoute(tt.validacao, tt.enviar, tt.visitado)
			require.Equal(t, tt.wantEnviar, enviar)
			require.Equal(t, tt.wantVisitado, visitado)
		})
	}
}

func TestDeriveRoute_IdempotentAndInvariant(t *testing.T) {
	for _, v := range inventory.ValidationOptions {
		for _, enviar := range []bool{false, true} {
			for _, visitado := range []bool{false, true} {
				e1, v1 := inventory.DeriveRoute(v, enviar, visitado)
				e2, v2 := inventory.DeriveRoute(v, e1, v1)
				require.Equal(t, e1, e2)
				require.Equal(t, v1, v2)
				if v1 {
					require.True(t, e1)
				}
			}
		}
	}
}

func TestDeriveRoutes_DoesNotModifyInput(t *testing.T) {
	items := []inventory.Item{{Validacao: inventory.ValidationYes}}
	out := inventory.DeriveRoutes(items)
	require.True(t, out[0].EnviarCampo)
	require.False(t, items[0].EnviarCampo)
}
