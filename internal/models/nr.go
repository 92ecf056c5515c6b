package models

// NR15 and NR16 annex catalogs (hazard classifications). A pericia may
// reference a subset of codes from each catalog.

var NR15Anexos = map[int]string{
	1:  "RUÍDO CONTÍNUO",
	2:  "RUÍDO DE IMPACTO",
	3:  "CALOR",
	5:  "RADIAÇÕES IONIZANTES",
	6:  "PRESSÕES",
	7:  "RADIAÇÕES NÃO-IONIZANTES",
	8:  "VIBRAÇÃO",
	9:  "FRIO",
	10: "UMIDADE",
	11: "AG. QUÍMICOS - LT",
	12: "POEIRAS",
	13: "AG. QUÍMICOS",
	14: "AG. BIOLÓGICOS",
}

var NR16Anexos = map[int]string{
	1: "EXPLOSIVOS",
	2: "INFLAMÁVEIS",
	3: "SEGURANÇA/ROUBO",
	4: "ENERGIA ELÉTRICA",
	5: "MOTOCICLETA",
}

// Column-run widths of the annex blocks in the import spreadsheet. The NR15
// block spans 14 columns and the NR16 block 5; the 1-based position within a
// block is the annex code.
const (
	NR15BlockWidth = 14
	NR16BlockWidth = 5
)
