package service

import (
    "strings"
    "unicode"
)

// Parameterize 把标题规整为小写连字符 token 串。
// 非字母数字的连续片段折叠为单个连字符，首尾不留连字符
func Parameterize(title string) string {
    var b strings.Builder
    b.Grow(len(title))
    pendingHyphen := false
    for _, r := range strings.ToLower(title) {
        if unicode.IsLetter(r) || unicode.IsDigit(r) {
            if pendingHyphen && b.Len() > 0 {
                b.WriteByte('-')
            }
            pendingHyphen = false
            b.WriteRune(r)
        } else {
            pendingHyphen = true
        }
    }
    return b.String()
}
