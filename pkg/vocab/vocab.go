// Package vocab ships the default vocabulary: the categories and
// symbols every install starts from and that reconciliation restores
// when persisted data is missing them. Data only, no logic.
package vocab

import "github.com/vozamiga/govoz/pkg/board"

// Categories returns a fresh copy of the shipped default vocabulary.
// The first entry is the permanent quick-access category.
func Categories() []board.Category {
	return []board.Category{
		{
			ID:    board.CoreCategoryID,
			Name:  "Essenciais",
			Icon:  "MessageCircle",
			Color: "#dbeafe",
			Items: []board.Symbol{
				{ID: "more", Label: "Mais", ColorCode: board.ColorBlue, IconName: "Plus"},
				{ID: "yes", Label: "Sim", ColorCode: board.ColorGreen, IconName: "Check"},
				{ID: "no", Label: "Não", ColorCode: board.ColorRed, IconName: "X"},
				{ID: "help", Label: "Ajuda", ColorCode: board.ColorBlue, IconName: "LifeBuoy"},
				{ID: "please", Label: "Por favor", ColorCode: board.ColorYellow, IconName: "Hand"},
				{ID: "want", Label: "Eu quero", ColorCode: board.ColorBlue, IconName: "MousePointer2"},
				{ID: "stop", Label: "Pare", ColorCode: board.ColorRed, IconName: "Octagon"},
				{ID: "thanks", Label: "Obrigado", ColorCode: board.ColorYellow, IconName: "ThumbsUp"},
				{ID: "finished", Label: "Acabei", ColorCode: board.ColorBlue, IconName: "CheckCircle"},
			},
		},
	}
}
