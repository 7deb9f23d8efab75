package gateway

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// analysisPromptTemplate は夢1件を5つの観点で分析させる指示。
// 夢の本文は引用符で囲むだけでエスケープしない。
const analysisPromptTemplate = `Analyze this dream and provide insights:

"%s"

Provide:
1. Emotional insights (detect emotions)
2. Symbol recognition (identify recurring symbols)
3. Theme detection (discover patterns)
4. Narrative analysis (understand story structure)
5. Lucidity indicators (elements that trigger lucid dreaming)

Format as JSON with keys: emotions, symbols, themes, narrative, lucidityIndicators`

// patternPromptTemplate は複数の夢を横断して5種類のパターンを分析させる指示。
const patternPromptTemplate = `Analyze these dreams for patterns:

%s

Provide:
1. Recurring elements (people, places, objects)
2. Emotional timeline (track emotions across dreams)
3. Dream categories (nightmares, lucid, recurring, etc.)
4. Sleep quality correlation
5. Trigger identification

Format as JSON.`

// imagePromptPrefix は画像生成プロンプトの前置き。
const imagePromptPrefix = "Create a surreal, dreamlike artwork based on this dream: "

// analysisPrompt は夢の分析プロンプトを組み立てる。
func analysisPrompt(dreamText string) string {
	return fmt.Sprintf(analysisPromptTemplate, dreamText)
}

// patternPrompt はパターン認識プロンプトを組み立てる。
func patternPrompt(dreams []dreamEntry) string {
	return fmt.Sprintf(patternPromptTemplate, numberDreams(dreams))
}

// numberDreams は夢を入力順に "Dream 1: ..." と番号付けし、空行で区切って連結する。
func numberDreams(dreams []dreamEntry) string {
	lines := lo.Map(dreams, func(d dreamEntry, i int) string {
		return fmt.Sprintf("Dream %d: %s", i+1, d.Text)
	})
	return strings.Join(lines, "\n\n")
}

// imagePrompt は画像生成プロンプトを組み立てる。
func imagePrompt(dreamDescription string) string {
	return imagePromptPrefix + dreamDescription
}
