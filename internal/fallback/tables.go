package fallback

// Built-in grapheme tables. Values are compact transcriptions cut with
// domain.SplitSymbols; an empty value makes the cluster silent.

// englishGraphemes maps English grapheme clusters to IPA.
var englishGraphemes = map[string]string{
	"tion": "ʃən",
	"sion": "ʒən",
	"ough": "ʌf",
	"ight": "aɪt",
	"eous": "iəs",
	"ious": "iəs",
	"ture": "tʃɚ",
	"sure": "ʃɚ",
	"ould": "ʊd",
	"ound": "aʊnd",
	"ence": "əns",
	"ance": "əns",
	"ment": "mənt",
	"ness": "nəs",
	"able": "əbəl",
	"ible": "əbəl",
	"ally": "əli",
	"ful":  "fəl",
	"ing":  "ɪŋ",
	"ght":  "t",
	"tch":  "tʃ",
	"dge":  "dʒ",
	"sch":  "sk",
	"chr":  "kɹ",
	"que":  "k",
	"ph":   "f",
	"th":   "θ",
	"sh":   "ʃ",
	"ch":   "tʃ",
	"wh":   "w",
	"wr":   "ɹ",
	"kn":   "n",
	"gn":   "n",
	"ck":   "k",
	"ng":   "ŋ",
	"gh":   "",
	"ee":   "i",
	"ea":   "i",
	"oo":   "u",
	"ou":   "aʊ",
	"ow":   "oʊ",
	"ai":   "eɪ",
	"ay":   "eɪ",
	"oi":   "ɔɪ",
	"oy":   "ɔɪ",
	"au":   "ɔ",
	"aw":   "ɔ",
	"er":   "ɚ",
	"ir":   "ɝ",
	"ur":   "ɝ",
	"ar":   "ɑɹ",
	"or":   "ɔɹ",
	"le":   "əl",
	"bb":   "b",
	"dd":   "d",
	"ff":   "f",
	"gg":   "ɡ",
	"ll":   "l",
	"mm":   "m",
	"nn":   "n",
	"pp":   "p",
	"rr":   "ɹ",
	"ss":   "s",
	"tt":   "t",
	"zz":   "z",

	"a": "æ",
	"b": "b",
	"c": "k",
	"d": "d",
	"e": "ɛ",
	"f": "f",
	"g": "ɡ",
	"h": "h",
	"i": "ɪ",
	"j": "dʒ",
	"k": "k",
	"l": "l",
	"m": "m",
	"n": "n",
	"o": "ɑ",
	"p": "p",
	"q": "k",
	"r": "ɹ",
	"s": "s",
	"t": "t",
	"u": "ʌ",
	"v": "v",
	"w": "w",
	"x": "ks",
	"y": "j",
	"z": "z",
}

// spanishGraphemes maps Castilian Spanish spelling to IPA.
var spanishGraphemes = map[string]string{
	"güe": "ɡwe",
	"güi": "ɡwi",
	"gue": "ɡe",
	"gui": "ɡi",
	"que": "ke",
	"qui": "ki",
	"ce":  "θe",
	"ci":  "θi",
	"ge":  "xe",
	"gi":  "xi",
	"ch":  "tʃ",
	"ll":  "ʝ",
	"rr":  "r",

	"a": "a",
	"á": "a",
	"b": "b",
	"c": "k",
	"d": "d",
	"e": "e",
	"é": "e",
	"f": "f",
	"g": "ɡ",
	"h": "",
	"i": "i",
	"í": "i",
	"j": "x",
	"k": "k",
	"l": "l",
	"m": "m",
	"n": "n",
	"ñ": "ɲ",
	"o": "o",
	"ó": "o",
	"p": "p",
	"q": "k",
	"r": "ɾ",
	"s": "s",
	"t": "t",
	"u": "u",
	"ú": "u",
	"ü": "w",
	"v": "b",
	"w": "w",
	"x": "ks",
	"y": "ʝ",
	"z": "θ",
}

// germanGraphemes maps German spelling to IPA.
var germanGraphemes = map[string]string{
	"tsch": "tʃ",
	"sch":  "ʃ",
	"chs":  "ks",
	"ch":   "ç",
	"ck":   "k",
	"dt":   "t",
	"ng":   "ŋ",
	"ph":   "f",
	"pf":   "pf",
	"qu":   "kv",
	"ss":   "s",
	"th":   "t",
	"tz":   "ts",
	"aa":   "aː",
	"ah":   "aː",
	"ee":   "eː",
	"eh":   "eː",
	"ie":   "iː",
	"ih":   "iː",
	"oo":   "oː",
	"oh":   "oː",
	"uh":   "uː",
	"ei":   "aɪ",
	"ai":   "aɪ",
	"eu":   "ɔʏ",
	"äu":   "ɔʏ",
	"au":   "aʊ",

	"a": "a",
	"ä": "ɛ",
	"b": "b",
	"c": "k",
	"d": "d",
	"e": "ɛ",
	"f": "f",
	"g": "ɡ",
	"h": "h",
	"i": "ɪ",
	"j": "j",
	"k": "k",
	"l": "l",
	"m": "m",
	"n": "n",
	"o": "ɔ",
	"ö": "ø",
	"p": "p",
	"r": "ʁ",
	"s": "s",
	"ß": "s",
	"t": "t",
	"u": "ʊ",
	"ü": "y",
	"v": "f",
	"w": "v",
	"x": "ks",
	"y": "y",
	"z": "ts",
}
