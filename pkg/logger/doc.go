// Package logger はslog用のハンドラーとログ属性のヘルパーを提供する。
//
// レベル表記をfatih/colorで色付けしたテキスト形式で出力する。
// 出力先が端末でない場合、色付けは自動的に無効になる。
package logger
