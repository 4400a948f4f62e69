package category

import "regexp"

// FallbackCategory is assigned when no rule fires. It never appears in the
// rule table itself.
const FallbackCategory = "Outros"

// Rule binds a category to the keywords and patterns that select it.
// Keywords are lowercase substrings matched case-insensitively; Patterns
// are regular expressions matched against the original-cased product name,
// consulted only when every keyword misses.
type Rule struct {
	Category string
	Keywords []string
	Patterns []*regexp.Regexp
}

// DefaultTaxonomy returns the ordered rule table. Order is precedence: the
// first category whose keywords or patterns match wins, so reordering this
// table silently reclassifies previously stored data. Keyword lists are
// intentionally broad and overlapping ("leite" sits under Alimentação even
// though milk drinks exist); the order resolves those overlaps.
func DefaultTaxonomy() []Rule {
	return []Rule{
		{
			Category: "Alimentação",
			Keywords: []string{
				"leite", "pão", "arroz", "feijão", "carne", "frango", "peixe",
				"ovo", "queijo", "iogurte", "fruta", "verdura", "legume",
				"macarrão", "farinha", "açúcar", "biscoito", "bolacha",
				"margarina", "presunto",
			},
		},
		{
			Category: "Limpeza",
			Keywords: []string{
				"detergente", "sabão", "amaciante", "desinfetante",
				"papel higiênico", "toalha", "água sanitária", "alvejante",
				"esponja", "multiuso", "limpador",
			},
		},
		{
			Category: "Higiene Pessoal",
			Keywords: []string{
				"shampoo", "condicionador", "sabonete", "pasta de dente",
				"escova", "desodorante", "absorvente", "fio dental",
				"creme dental",
			},
		},
		{
			Category: "Bebidas",
			Keywords: []string{
				"água", "refrigerante", "suco", "cerveja", "vinho", "café",
				"chá", "energético", "isotônico",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b\d+\s?(ml|ML|l|L|litros?)\b`),
				regexp.MustCompile(`\b(zero|Zero|ZERO|diet|Diet|DIET|light|Light|LIGHT)\b`),
			},
		},
		{
			Category: "Medicamentos",
			Keywords: []string{
				"remédio", "vitamina", "analgésico", "antibiótico",
				"dipirona", "paracetamol", "ibuprofeno", "xarope",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b\d+\s?(mg|MG)\b`),
				regexp.MustCompile(`\b\d+\s?(comprimidos?|Comprimidos?)\b`),
			},
		},
		{
			Category: "Eletrônicos",
			Keywords: []string{
				"celular", "fone", "carregador", "cabo", "bateria", "pilha",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(USB|HDMI|LED|Bluetooth|bluetooth)\b`),
			},
		},
		{
			Category: "Papelaria",
			Keywords: []string{
				"caderno", "caneta", "lápis", "borracha", "papel sulfite",
				"envelope", "cartolina", "grampeador", "cola escolar",
			},
		},
		{
			Category: "Pet Shop",
			Keywords: []string{
				"ração", "petisco", "areia para gato", "antipulgas",
				"coleira", "pet",
			},
		},
		{
			Category: "Casa e Decoração",
			Keywords: []string{
				"almofada", "cortina", "tapete", "vaso", "quadro",
				"luminária", "porta-retrato", "vela",
			},
		},
		{
			Category: "Utilidades Domésticas",
			Keywords: []string{
				"panela", "frigideira", "copo", "prato", "talher",
				"garrafa térmica", "pote", "vassoura", "balde", "rodo",
			},
		},
	}
}

// CategoryNames returns every category in precedence order, with the
// fallback appended last.
func CategoryNames() []string {
	rules := DefaultTaxonomy()
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.Category)
	}
	return append(names, FallbackCategory)
}

// IsKnownCategory reports whether name belongs to the taxonomy.
func IsKnownCategory(name string) bool {
	if name == FallbackCategory {
		return true
	}
	for _, r := range DefaultTaxonomy() {
		if r.Category == name {
			return true
		}
	}
	return false
}
