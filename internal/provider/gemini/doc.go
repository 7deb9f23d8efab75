// Package gemini はGoogle Gemini APIのgenerateContentを使ったテキスト生成を提供する。
//
// REST APIをJSONで直接呼び出す。ストリーミングは使わず、応答全体を待ってから返す。
package gemini
