// Package gateway は夢日記アプリ向けのリクエストゲートウェイを提供する。
//
// 各エンドポイントは入力を検証し、上流のAIプロバイダーを1回だけ呼び出し、
// 結果を固定のJSONエンベロープ（{success, ...} または {error}）に整形して返す。
// 夢の分析とパターン認識では、上流のテキストがJSONとして解釈できない場合も
// エラーにせず、生のテキストをそのまま返す（縮退モード）。
//
// リクエスト間で共有する可変状態は持たない。プロバイダーのクライアントは
// 起動時に一度だけ生成して注入する。
package gateway
