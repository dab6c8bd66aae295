package render

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoidElement(tag string) bool { return voidElements[tag] }

// inlineElements stay on one line in pretty output.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "cite": true,
	"code": true, "em": true, "i": true, "kbd": true, "label": true,
	"mark": true, "q": true, "s": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"wbr": true, "button": true, "li": true,
}

func isInlineElement(tag string) bool { return inlineElements[tag] }
