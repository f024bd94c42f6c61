package engine

import (
	"strings"

	"github.com/alexanderramin/questgame/internal/domain"
)

var categoryKeywords = map[domain.Category][]string{
	domain.CategoryBuild: {
		"bug", "fix", "corrigir", "feature", "refactor", "teste", "test",
		"implementar", "criar", "codar", "codigo", "api", "backend",
		"frontend", "componente", "modulo", "funcao", "classe",
	},
	domain.CategoryShip: {
		"release", "deploy", "loja", "store", "publish", "publicar",
		"update", "versao", "build", "enviar", "submeter", "upload",
		"producao", "production", "launch", "lancar",
	},
	domain.CategoryReach: {
		"blog", "video", "tiktok", "youtube", "twitter", "post", "anuncio",
		"marketing", "distribuicao", "audiencia", "newsletter", "email",
		"conteudo", "content", "social", "rede", "divulgar", "promover",
	},
}

// tiePreference resolves equal scores toward externally visible work.
var tiePreference = []domain.Category{domain.CategoryReach, domain.CategoryShip, domain.CategoryBuild}

// Classify maps a free-text title to a category by counting which keywords
// of each category appear in it. No match means build; ties resolve
// reach > ship > build.
func Classify(text string) domain.Category {
	scores := CategoryScores(text)

	best := 0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	if best == 0 {
		return domain.CategoryBuild
	}
	for _, c := range tiePreference {
		if scores[c] == best {
			return c
		}
	}
	return domain.CategoryBuild
}

// CategoryScores returns the number of distinct keywords of each category
// found in text.
func CategoryScores(text string) map[domain.Category]int {
	lower := strings.ToLower(text)
	scores := make(map[domain.Category]int, len(categoryKeywords))
	for c, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[c]++
			}
		}
	}
	return scores
}
