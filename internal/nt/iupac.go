package nt

// 4-bit mask per base. The same masks are the BAM nt16 codes, so the
// packed value of an IUPAC letter is the OR of the bases it stands for.
const (
	maskA = 1 << 0
	maskC = 1 << 1
	maskG = 1 << 2
	maskT = 1 << 3
)

var codeMap = map[byte]uint8{
	'=': 0, // "same as reference" in BAM
	'A': maskA,
	'C': maskC,
	'G': maskG,
	'T': maskT,
	'R': maskA | maskG,
	'Y': maskC | maskT,
	'S': maskC | maskG,
	'W': maskA | maskT,
	'K': maskG | maskT,
	'M': maskA | maskC,
	'B': maskC | maskG | maskT,
	'D': maskA | maskG | maskT,
	'H': maskA | maskC | maskT,
	'V': maskA | maskC | maskG,
	'N': maskA | maskC | maskG | maskT,
}

// Mask returns the 4-bit mask for an IUPAC letter (case-insensitive).
func Mask(b byte) (uint8, bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	m, ok := codeMap[b]
	return m, ok
}
