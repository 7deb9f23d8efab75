package gateway

import "encoding/base64"

// decodeAudio はbase64文字列を寛容にデコードする。
//
// 標準とURLセーフの両方のアルファベットを受け付け、パディングは省略可能。
// アルファベット以外の文字（空白や改行など）は読み飛ばし、最初の '=' で打ち切る。
// 不正な入力もエラーにはせず、デコードできた分のバイト列を返す。
func decodeAudio(s string) []byte {
	buf := make([]byte, 0, len(s))
scan:
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '=':
			break scan
		case 'A' <= ch && ch <= 'Z', 'a' <= ch && ch <= 'z', '0' <= ch && ch <= '9', ch == '+', ch == '/':
			buf = append(buf, ch)
		case ch == '-':
			buf = append(buf, '+')
		case ch == '_':
			buf = append(buf, '/')
		}
	}

	// 4n+1文字目だけが残った場合、その文字は1バイトも構成できない
	if len(buf)%4 == 1 {
		buf = buf[:len(buf)-1]
	}

	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(buf)))
	n, _ := base64.RawStdEncoding.Decode(out, buf)
	return out[:n]
}
