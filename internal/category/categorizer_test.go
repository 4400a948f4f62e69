package category

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizer_Categorize(t *testing.T) {
	c := NewCategorizer()

	tests := []struct {
		name    string
		product string
		want    string
	}{
		{
			name:    "keyword wins before later pattern could",
			product: "Leite Integral 1L",
			want:    "Alimentação",
		},
		{
			name:    "keyword match for drinks",
			product: "Refrigerante Cola 2L",
			want:    "Bebidas",
		},
		{
			name:    "volume pattern catches unlisted drink",
			product: "Guaraná Antarctica 600ml",
			want:    "Bebidas",
		},
		{
			name:    "zero marker pattern",
			product: "Coca Cola Zero",
			want:    "Bebidas",
		},
		{
			name:    "compound keyword stays ahead of drink keyword",
			product: "Água Sanitária 1L",
			want:    "Limpeza",
		},
		{
			name:    "cleaning keyword beats volume pattern",
			product: "Detergente Neutro 500ml",
			want:    "Limpeza",
		},
		{
			name:    "personal care keyword",
			product: "Shampoo Anticaspa",
			want:    "Higiene Pessoal",
		},
		{
			name:    "toilet paper is a cleaning product",
			product: "Papel Higiênico Folha Dupla",
			want:    "Limpeza",
		},
		{
			name:    "medicine keyword",
			product: "Dipirona Sódica",
			want:    "Medicamentos",
		},
		{
			name:    "dosage pattern catches generic medicine",
			product: "Genérico 500mg",
			want:    "Medicamentos",
		},
		{
			name:    "electronics keyword",
			product: "Carregador de celular",
			want:    "Eletrônicos",
		},
		{
			name:    "USB pattern on original casing",
			product: "Adaptador USB 3.0",
			want:    "Eletrônicos",
		},
		{
			name:    "stationery keyword",
			product: "Caderno 96 folhas",
			want:    "Papelaria",
		},
		{
			name:    "pet keyword",
			product: "Ração Premium Cães Adultos",
			want:    "Pet Shop",
		},
		{
			name:    "home decor keyword",
			product: "Almofada Decorativa",
			want:    "Casa e Decoração",
		},
		{
			name:    "housewares keyword",
			product: "Panela de Pressão 20cm",
			want:    "Utilidades Domésticas",
		},
		{
			name:    "litre suffix drags a pressure cooker into drinks",
			product: "Panela de Pressão 4,5L",
			want:    "Bebidas",
		},
		{
			name:    "nothing fires",
			product: "xyz123 unknown widget",
			want:    "Outros",
		},
		{
			name:    "empty name",
			product: "",
			want:    "Outros",
		},
		{
			name:    "keyword matching ignores case",
			product: "LEITE DESNATADO PIRACANJUBA",
			want:    "Alimentação",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.product))
		})
	}
}

func TestCategorizer_Idempotent(t *testing.T) {
	c := NewCategorizer()

	inputs := []string{
		"Leite Integral 1L",
		"xyz123 unknown widget",
		"Guaraná Antarctica 600ml",
	}

	for _, input := range inputs {
		first := c.Categorize(input)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Categorize(input), "input %q", input)
		}
	}
}

func TestCategorizer_CustomRules(t *testing.T) {
	c := NewCategorizerWithRules([]Rule{
		{Category: "Primeira", Keywords: []string{"alvo"}},
		{Category: "Segunda", Keywords: []string{"alvo"}},
		{Category: "Padrão", Patterns: []*regexp.Regexp{regexp.MustCompile(`\bX\b`)}},
	})

	assert.Equal(t, "Primeira", c.Categorize("um alvo qualquer"), "earlier rule must win")
	assert.Equal(t, "Padrão", c.Categorize("marca X"), "pattern fires when keywords miss")
	assert.Equal(t, FallbackCategory, c.Categorize("marca x"), "patterns are case-sensitive")
}
