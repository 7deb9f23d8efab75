// Package httpclient はJSON形式のHTTP APIを呼び出すクライアントを提供する。
//
// 上流のAIプロバイダー（Gemini等のREST API）を呼び出す際に使用する。
// 認証ヘッダーの付与、タイムアウト、リクエストIDの伝播、
// 非2xxレスポンスのエラー化といった通信パターンを統一する。
package httpclient
