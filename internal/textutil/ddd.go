package textutil

import "regexp"

// Region is the state and main city served by a telephone area code.
type Region struct {
	State string
	City  string
}

// DDDInfo is the area code found in a formatted phone number.
type DDDInfo struct {
	DDD    string
	Region Region
}

var dddPattern = regexp.MustCompile(`\((\d{2})\)`)

// DDDRegions maps Brazilian area codes to their region.
var DDDRegions = map[string]Region{
	"11": {"SP", "São Paulo"},
	"12": {"SP", "São José dos Campos"},
	"13": {"SP", "Santos"},
	"14": {"SP", "Bauru"},
	"15": {"SP", "Sorocaba"},
	"16": {"SP", "Ribeirão Preto"},
	"17": {"SP", "São José do Rio Preto"},
	"18": {"SP", "Presidente Prudente"},
	"19": {"SP", "Campinas"},
	"21": {"RJ", "Rio de Janeiro"},
	"22": {"RJ", "Campos dos Goytacazes"},
	"24": {"RJ", "Petrópolis"},
	"27": {"ES", "Vitória"},
	"28": {"ES", "Cachoeiro de Itapemirim"},
	"31": {"MG", "Belo Horizonte"},
	"32": {"MG", "Juiz de Fora"},
	"33": {"MG", "Governador Valadares"},
	"34": {"MG", "Uberlândia"},
	"35": {"MG", "Poços de Caldas"},
	"37": {"MG", "Divinópolis"},
	"38": {"MG", "Montes Claros"},
	"41": {"PR", "Curitiba"},
	"42": {"PR", "Ponta Grossa"},
	"43": {"PR", "Londrina"},
	"44": {"PR", "Maringá"},
	"45": {"PR", "Foz do Iguaçu"},
	"46": {"PR", "Francisco Beltrão"},
	"47": {"SC", "Joinville"},
	"48": {"SC", "Florianópolis"},
	"49": {"SC", "Chapecó"},
	"51": {"RS", "Porto Alegre"},
	"53": {"RS", "Pelotas"},
	"54": {"RS", "Caxias do Sul"},
	"55": {"RS", "Santa Maria"},
	"61": {"DF", "Brasília"},
	"62": {"GO", "Goiânia"},
	"63": {"TO", "Palmas"},
	"64": {"GO", "Rio Verde"},
	"65": {"MT", "Cuiabá"},
	"66": {"MT", "Rondonópolis"},
	"67": {"MS", "Campo Grande"},
	"68": {"AC", "Rio Branco"},
	"69": {"RO", "Porto Velho"},
	"71": {"BA", "Salvador"},
	"73": {"BA", "Ilhéus"},
	"74": {"BA", "Juazeiro"},
	"75": {"BA", "Feira de Santana"},
	"77": {"BA", "Vitória da Conquista"},
	"79": {"SE", "Aracaju"},
	"81": {"PE", "Recife"},
	"82": {"AL", "Maceió"},
	"83": {"PB", "João Pessoa"},
	"84": {"RN", "Natal"},
	"85": {"CE", "Fortaleza"},
	"86": {"PI", "Teresina"},
	"87": {"PE", "Petrolina"},
	"88": {"CE", "Juazeiro do Norte"},
	"89": {"PI", "Picos"},
	"91": {"PA", "Belém"},
	"92": {"AM", "Manaus"},
	"93": {"PA", "Santarém"},
	"94": {"PA", "Marabá"},
	"95": {"RR", "Boa Vista"},
	"96": {"AP", "Macapá"},
	"97": {"AM", "Coari"},
	"98": {"MA", "São Luís"},
	"99": {"MA", "Imperatriz"},
}

// LookupDDD extracts the "(XX)" area code from a formatted phone and
// returns its region. ok is false when the phone has no known area code.
func LookupDDD(phone string) (info DDDInfo, ok bool) {
	m := dddPattern.FindStringSubmatch(phone)
	if m == nil {
		return DDDInfo{}, false
	}
	region, found := DDDRegions[m[1]]
	if !found {
		return DDDInfo{}, false
	}
	return DDDInfo{DDD: m[1], Region: region}, true
}
