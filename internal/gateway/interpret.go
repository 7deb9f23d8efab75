package gateway

import "encoding/json"

// InterpretationKind はプロバイダーのテキストをどう解釈したかを表す。
type InterpretationKind int

const (
	// Structured はテキストが有効なJSONだったことを表す。
	Structured InterpretationKind = iota
	// Raw はテキストがJSONとして解釈できず、そのまま保持したことを表す。
	Raw
)

// String は解釈の種類名を返す。
func (k InterpretationKind) String() string {
	switch k {
	case Structured:
		return "structured"
	case Raw:
		return "raw"
	default:
		return "unknown"
	}
}

// Interpretation はプロバイダーが返したテキストの解釈結果。
// 有効なJSONであればその値を、そうでなければ元のテキストを保持する。
type Interpretation struct {
	kind InterpretationKind
	text string
}

// Interpret はテキストをJSONとして解釈する。
// JSONとして無効な場合は失敗とせず、Rawとして元のテキストを保持する。
func Interpret(text string) Interpretation {
	if json.Valid([]byte(text)) {
		return Interpretation{kind: Structured, text: text}
	}
	return Interpretation{kind: Raw, text: text}
}

// Kind は解釈の種類を返す。
func (i Interpretation) Kind() InterpretationKind {
	return i.kind
}

// Text はプロバイダーが返した元のテキストを返す。
func (i Interpretation) Text() string {
	return i.text
}

// Payload はレスポンスに埋め込むJSONを返す。
// Structuredの場合は解釈したJSONそのもの、Rawの場合は {rawKey: 元のテキスト} を返す。
func (i Interpretation) Payload(rawKey string) json.RawMessage {
	if i.kind == Structured {
		return json.RawMessage(i.text)
	}
	// map[string]stringのMarshalは失敗しない
	b, _ := json.Marshal(map[string]string{rawKey: i.text})
	return b
}
