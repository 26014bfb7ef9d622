package transform

import (
	"strings"
)

// NormalizeNAICS strips whitespace and trailing dashes or X placeholders
// ("5221--", "4411XX") from a NAICS-style code. Returns "" for blank or
// not-applicable codes.
func NormalizeNAICS(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimRight(code, "-xXzZ")
	if code == "" || code == "0" {
		return ""
	}
	return code
}

// NAICSToSector returns the 2-digit sector code.
func NAICSToSector(code string) string {
	code = NormalizeNAICS(code)
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}

// Supersector groups follow the BLS Current Employment Statistics layout,
// which is how job-loss tables are published.
const (
	GroupAgriculture        = "agriculture"
	GroupMiningLogging      = "mining_and_logging"
	GroupConstruction       = "construction"
	GroupManufacturing      = "manufacturing"
	GroupWholesaleTrade     = "wholesale_trade"
	GroupRetailTrade        = "retail_trade"
	GroupTransportUtility   = "transportation_and_utilities"
	GroupInformation        = "information"
	GroupFinancial          = "financial_activities"
	GroupProfessional       = "professional_and_business_services"
	GroupEducationHealth    = "education_and_health_services"
	GroupLeisureHospitality = "leisure_and_hospitality"
	GroupOtherServices      = "other_services"
	GroupGovernment         = "government"
)

// sectorGroups maps 2-digit NAICS sectors to BLS supersector groups.
var sectorGroups = map[string]string{
	"11": GroupAgriculture,
	"21": GroupMiningLogging,
	"22": GroupTransportUtility,
	"23": GroupConstruction,
	"31": GroupManufacturing,
	"32": GroupManufacturing,
	"33": GroupManufacturing,
	"3M": GroupManufacturing, // ACS uses 3M for mixed manufacturing
	"42": GroupWholesaleTrade,
	"44": GroupRetailTrade,
	"45": GroupRetailTrade,
	"4M": GroupRetailTrade,
	"48": GroupTransportUtility,
	"49": GroupTransportUtility,
	"51": GroupInformation,
	"52": GroupFinancial,
	"53": GroupFinancial,
	"54": GroupProfessional,
	"55": GroupProfessional,
	"56": GroupProfessional,
	"61": GroupEducationHealth,
	"62": GroupEducationHealth,
	"71": GroupLeisureHospitality,
	"72": GroupLeisureHospitality,
	"81": GroupOtherServices,
	"92": GroupGovernment,
}

// SectorGroup returns the supersector group for a NAICS-style code.
func SectorGroup(code string) (string, bool) {
	g, ok := sectorGroups[NAICSToSector(code)]
	return g, ok
}
