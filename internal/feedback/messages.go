package feedback

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/dalgona/internal/model"
)

// Lang selects prompt and fallback language.
type Lang string

const (
	LangEnglish Lang = "en"
	LangKorean  Lang = "ko"
)

// ParseLang validates a language code.
func ParseLang(s string) (Lang, error) {
	switch l := Lang(strings.ToLower(strings.TrimSpace(s))); l {
	case LangEnglish, LangKorean:
		return l, nil
	case "":
		return LangEnglish, nil
	default:
		return "", fmt.Errorf("unsupported language %q (want en or ko)", s)
	}
}

type phrasebook struct {
	successPrompt   string
	failedPrompt    string
	introPrompt     string
	successFallback string
	failedFallback  string
	introFallback   string
}

var phrasebooks = map[Lang]phrasebook{
	LangEnglish: {
		successPrompt:   "The player just cleared level %d of the dalgona candy game. Write a short, intense and slightly dark congratulation in English, in the style of Squid Game. Hint that the next level will be harder.",
		failedPrompt:    "The player cracked the dalgona candy on level %d. Write a short, menacing and dark message about failure and elimination in English, in the style of Squid Game.",
		introPrompt:     "Write one short, mysterious survival tip for the dalgona candy game in English, in the style of Squid Game.",
		successFallback: "You passed. Perhaps it was only luck.",
		failedFallback:  "Eliminated. Your game ends here.",
		introFallback:   "Focus on the tip of the needle. The smallest crack decides whether you live.",
	},
	LangKorean: {
		successPrompt:   "사용자가 달고나 게임 %d단계를 통과했습니다. 짧고 강렬하며 약간 어두운 축하 메시지를 한국어로 작성하세요 (오징어 게임 스타일). 다음 단계가 더 어려울 것임을 암시하세요.",
		failedPrompt:    "사용자가 %d단계에서 달고나를 깨뜨렸습니다. 실패와 탈락에 대한 위협적이고 어두운 메시지를 한국어로 작성하세요 (오징어 게임 스타일).",
		introPrompt:     "달고나 게임에 대한 짧고 신비로운 생존 팁을 한국어로 작성하세요 (오징어 게임 스타일).",
		successFallback: "통과하셨군요. 하지만 운이 좋았던 걸지도 모릅니다.",
		failedFallback:  "탈락입니다. 게임은 여기서 끝입니다.",
		introFallback:   "바늘 끝에 집중하십시오. 미세한 균열이 당신의 생사를 결정할 것입니다.",
	},
}

func book(lang Lang) phrasebook {
	if b, ok := phrasebooks[lang]; ok {
		return b
	}
	return phrasebooks[LangEnglish]
}

func outcomePrompt(lang Lang, outcome model.Outcome, level int) string {
	b := book(lang)
	if outcome == model.OutcomeSuccess {
		return fmt.Sprintf(b.successPrompt, level)
	}
	return fmt.Sprintf(b.failedPrompt, level)
}

func outcomeFallback(lang Lang, outcome model.Outcome) string {
	b := book(lang)
	if outcome == model.OutcomeSuccess {
		return b.successFallback
	}
	return b.failedFallback
}
