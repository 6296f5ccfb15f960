// Package assets создает и скачивает изображения для дашборда: логотипы команд и фото пилотов.
package assets

// Kind - тип изображения; совпадает с именем подкаталога в каталоге изображений
type Kind string

const (
	KindTeam   Kind = "teams"
	KindDriver Kind = "drivers"
)

// Source - изображение для скачивания
type Source struct {
	Kind Kind
	ID   string
	URL  string
}

// FileName возвращает имя файла изображения
func (s Source) FileName() string {
	return s.ID + ".png"
}

const (
	f1Teams   = "https://www.formula1.com/content/dam/fom-website/teams/"
	f1Drivers = "https://www.formula1.com/content/dam/fom-website/drivers/"
	f1Suffix  = ".png.transform/2col/image.png"
)

var teamLogos = [][2]string{
	{"mercedes", f1Teams + "2024/mercedes-logo" + f1Suffix},
	{"red-bull", f1Teams + "2024/red-bull-racing-logo" + f1Suffix},
	{"ferrari", f1Teams + "2024/ferrari-logo" + f1Suffix},
	{"mclaren", f1Teams + "2024/mclaren-logo" + f1Suffix},
	{"aston-martin", f1Teams + "2024/aston-martin-logo" + f1Suffix},
	{"alpine", f1Teams + "2024/alpine-logo" + f1Suffix},
	{"williams", f1Teams + "2024/williams-logo" + f1Suffix},
	{"rb", f1Teams + "2024/rb-logo" + f1Suffix},
	{"kick-sauber", f1Teams + "2024/kick-sauber-logo" + f1Suffix},
	{"haas", f1Teams + "2024/haas-f1-team-logo" + f1Suffix},
	{"alphatauri", f1Teams + "2023/alphatauri-logo" + f1Suffix},
	{"toro-rosso", f1Teams + "2019/toro-rosso-logo" + f1Suffix},
	{"racing-point", f1Teams + "2020/racing-point-logo" + f1Suffix},
	{"force-india", f1Teams + "2018/force-india-logo" + f1Suffix},
	{"renault", f1Teams + "2020/renault-logo" + f1Suffix},
	{"alfa-romeo", f1Teams + "2023/alfa-romeo-logo" + f1Suffix},
	{"sauber", f1Teams + "2018/sauber-logo" + f1Suffix},
	{"lotus-f1", "https://upload.wikimedia.org/wikipedia/commons/thumb/e/e2/Lotus_F1_logo.svg/320px-Lotus_F1_logo.svg.png"},
	{"manor", "https://upload.wikimedia.org/wikipedia/en/thumb/1/12/Manor_Racing_logo.svg/320px-Manor_Racing_logo.svg.png"},
	{"marussia", "https://upload.wikimedia.org/wikipedia/en/thumb/9/9e/Marussia_F1_Team_logo.svg/320px-Marussia_F1_Team_logo.svg.png"},
}

// driverHeadshots: id, путь на сайте F1 (буква/код_имя/код)
var driverHeadshots = [][2]string{
	{"lewis-hamilton", "L/LEWHAM01_Lewis_Hamilton/lewham01"},
	{"george-russell", "G/GEORUS01_George_Russell/georus01"},
	{"max-verstappen", "M/MAXVER01_Max_Verstappen/maxver01"},
	{"sergio-perez", "S/SERPER01_Sergio_Perez/serper01"},
	{"charles-leclerc", "C/CHALEC01_Charles_Leclerc/chalec01"},
	{"carlos-sainz-jr", "C/CARSAI01_Carlos_Sainz/carsai01"},
	{"lando-norris", "L/LANNOR01_Lando_Norris/lannor01"},
	{"oscar-piastri", "O/OSCPIA01_Oscar_Piastri/oscpia01"},
	{"fernando-alonso", "F/FERALO01_Fernando_Alonso/feralo01"},
	{"lance-stroll", "L/LANSTR01_Lance_Stroll/lanstr01"},
	{"esteban-ocon", "E/ESTOCO01_Esteban_Ocon/estoco01"},
	{"pierre-gasly", "P/PIEGAS01_Pierre_Gasly/piegas01"},
	{"alexander-albon", "A/ALEALB01_Alexander_Albon/alealb01"},
	{"logan-sargeant", "L/LOGSAR01_Logan_Sargeant/logsar01"},
	{"daniel-ricciardo", "D/DANRIC01_Daniel_Ricciardo/danric01"},
	{"yuki-tsunoda", "Y/YUKTSU01_Yuki_Tsunoda/yuktsu01"},
	{"nico-hulkenberg", "N/NICHUL01_Nico_Hulkenberg/nichul01"},
	{"kevin-magnussen", "K/KEVMAG01_Kevin_Magnussen/kevmag01"},
	{"valtteri-bottas", "V/VALBOT01_Valtteri_Bottas/valbot01"},
	{"guanyu-zhou", "G/GUAZHO01_Guanyu_Zhou/guazho01"},
	{"franco-colapinto", "F/FRACOL01_Franco_Colapinto/fracol01"},
	{"liam-lawson", "L/LIALAW01_Liam_Lawson/lialaw01"},
	{"jack-doohan", "J/JACDOO01_Jack_Doohan/jacdoo01"},
	{"sebastian-vettel", "S/SEBVET01_Sebastian_Vettel/sebvet01"},
	{"kimi-raikkonen", "K/KIMRAI01_Kimi_Raikk%C3%B6nen/kimrai01"},
	{"mick-schumacher", "M/MICSCH02_Mick_Schumacher/micsch02"},
	{"nicholas-latifi", "N/NICLAF01_Nicholas_Latifi/niclaf01"},
	{"antonio-giovinazzi", "A/ANTGIO01_Antonio_Giovinazzi/antgio01"},
	{"nikita-mazepin", "N/NIKMAZ01_Nikita_Mazepin/nikmaz01"},
	{"romain-grosjean", "R/ROMGRO01_Romain_Grosjean/romgro01"},
	{"daniil-kvyat", "D/DANKVY01_Daniil_Kvyat/dankvy01"},
	{"robert-kubica", "R/ROBKUB01_Robert_Kubica/robkub01"},
	{"sergey-sirotkin", "S/SERSIR01_Sergey_Sirotkin/sersir01"},
	{"stoffel-vandoorne", "S/STOVAN01_Stoffel_Vandoorne/stovan01"},
	{"felipe-massa", "F/FELMAS01_Felipe_Massa/felmas01"},
	{"jolyon-palmer", "J/JOLPAL01_Jolyon_Palmer/jolpal01"},
	{"marcus-ericsson", "M/MARERI01_Marcus_Ericsson/mareri01"},
	{"pascal-wehrlein", "P/PASWEH01_Pascal_Wehrlein/pasweh01"},
	{"jenson-button", "J/JENBUT01_Jenson_Button/jenbut01"},
	{"nico-rosberg", "N/NICROS01_Nico_Rosberg/nicros01"},
	{"felipe-nasr", "F/FELNAS01_Felipe_Nasr/felnas01"},
	{"rio-haryanto", "R/RIOHAR01_Rio_Haryanto/riohar01"},
	{"esteban-gutierrez", "E/ESTGUT01_Esteban_Gutierrez/estgut01"},
	{"nyck-de-vries", "N/NYCDEV01_Nyck_De%20Vries/nycdev01"},
	{"brendon-hartley", "B/BREHAR01_Brendon_Hartley/brehar01"},
	{"pastor-maldonado", "P/PASMAL01_Pastor_Maldonado/pasmal01"},
	{"paul-di-resta", "P/PAUDIR01_Paul_di_Resta/paudir01"},
	{"will-stevens", "W/WILSTE01_Will_Stevens/wilste01"},
	{"roberto-merhi", "R/ROBMER01_Roberto_Merhi/robmer01"},
}

const bortoletoHeadshot = "https://www.formula2.com/content/dam/fom-website/2018-redesign-assets/drivers/2024/gabrie_bortoleto.png.transform/2col-retina/image.png"

// Catalog возвращает все известные изображения: сначала логотипы команд, затем фото пилотов.
func Catalog() []Source {
	sources := make([]Source, 0, len(teamLogos)+len(driverHeadshots)+1)
	for _, t := range teamLogos {
		sources = append(sources, Source{Kind: KindTeam, ID: t[0], URL: t[1]})
	}
	for _, d := range driverHeadshots {
		sources = append(sources, Source{Kind: KindDriver, ID: d[0], URL: f1Drivers + d[1] + f1Suffix})
	}
	sources = append(sources, Source{Kind: KindDriver, ID: "gabriel-bortoleto", URL: bortoletoHeadshot})
	return sources
}
