package utils

import (
	"sort"
	"strings"
)

// Coordinates is an approximate map position for an incident location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Police-log locations are free text; this table maps the names that appear
// in the log to approximate campus coordinates. Several aliases intentionally
// point at the same building.
var locationCoordinates = map[string]Coordinates{
	"Admissions":                   {35.30111323057074, -80.73299333932053},
	"Admissions Building":          {35.30111323057074, -80.73299333932053},
	"Alumni":                       {35.30276842372914, -80.73873474549336},
	"Alumni Center":                {35.30281037400156, -80.73872110339664},
	"Alumni Way/Broadrick":         {35.30265567427994, -80.73205648768239},
	"Alumni Way/Broadrick Blvd.":   {35.30265567427994, -80.73205648768239},
	"Annex":                        {35.305690534580606, -80.73169691688499},
	"Atkins":                       {35.305733192943606, -80.73191008154319},
	"Atkins Library":               {35.305733192943606, -80.73191008154319},
	"Barnes and Noble":             {35.30852348216909, -80.73417098836394},
	"Barnes & Noble":               {35.30852348216909, -80.73417098836394},
	"Barnard":                      {35.30587000495334, -80.73002949124496},
	"Barnhardt":                    {35.30638812746262, -80.73438037291629},
	"Barnhardt Lane":               {35.30629307649671, -80.73623338389348},
	"BATT":                         {35.31259210393988, -80.74031679338913},
	"BATT Cave":                    {35.31259210393988, -80.74031679338913},
	"BCOB":                         {35.306375560470336, -80.72997959351832},
	"Belk":                         {35.30635901681658, -80.72995739603715},
	"Belk Gym":                     {35.30546787659006, -80.73556751318979},
	"Belk Hall":                    {35.31047406540071, -80.73473993175023},
	"Belk Plaza":                   {35.305173906672415, -80.73097988603742},
	"Bioinformatics":               {35.312840493458374, -80.74197285343608},
	"Bissell House":                {35.30112076969896, -80.73903288995628},
	"Boulevard 98":                 {35.30909501324001, -80.72055065343277},
	"Burson":                       {35.307523512913264, -80.73245227190182},
	"Burson Hall":                  {35.307523512913264, -80.73245227190182},
	"CAB":                          {35.309098299942654, -80.72824348620226},
	"CATO":                         {35.305466066991265, -80.72873598593509},
	"CHHS":                         {35.307554133985306, -80.73333936358785},
	"COE":                          {35.307605505569846, -80.73417117379482},
	"College of Education":         {35.307605505569846, -80.73417117379482},
	"Counseling Center":            {35.310235875002306, -80.73006057424566},
	"Craver Rd":                    {35.30808567880388, -80.73371735016732},
	"Craver Road":                  {35.30808567880388, -80.73371735016732},
	"CRI":                          {35.30923281386327, -80.74345534383328},
	"CRI Deck":                     {35.30922916950404, -80.74343764134831},
	"Cafeteria Activities Building": {35.309098299942654, -80.72824348620226},
	"Cameron":                      {35.307730357392565, -80.73123355479966},
	"Cameron Blvd":                 {35.306558977125015, -80.73672875703002},
	"Cato":                         {35.30549351102161, -80.7287292913576},
	"Cato Hall":                    {35.30549351102161, -80.7287292913576},
	"Cedar":                        {35.30962602965161, -80.72893561094548},
	"Cedar Hall":                   {35.30962602965161, -80.72893561094548},
	"Chancellor's Residence":       {35.30112076969896, -80.73903288995628},
	"Colvard":                      {35.30450888861625, -80.7317397125908},
	"Cone":                         {35.30515583467655, -80.73324276879883},
	"Cone Center":                  {35.3051636715818, -80.73324279475698},
	"Cone Deck":                    {35.304749132848784, -80.73434914193838},
	"Denny":                        {35.305427985598584, -80.72981362683163},
	"Duke Hall":                    {35.31197015949181, -80.74120570366482},
	"EPIC":                         {35.309184110651444, -80.74155091022566},
	"East":                         {35.305437547453295, -80.72681108856622},
	"East Deck 1":                  {35.30480453880019, -80.72748938906241},
	"East Deck 2":                  {35.30544065585483, -80.72681104336117},
	"East Deck 3":                  {35.30603347157714, -80.72610357894776},
	"Elm":                          {35.30878116400884, -80.73110627408393},
	"Elm Hall":                     {35.30878116400884, -80.73110627408393},
	"Fretwell":                     {35.306198413356896, -80.72896811055179},
	"Friday":                       {35.306375560470336, -80.72997959351832},
	"Friday Building":              {35.306375560470336, -80.72997959351832},
	"Gage Admissions Center":       {35.30111323057074, -80.73299333932053},
	"Garinger":                     {35.30502656528598, -80.73002808243331},
	"Greek Village":                {35.31239269859116, -80.72578153851921},
	"Grigg Hall":                   {35.31131792912825, -80.74188240561898},
	"Harris Alumni Center":         {35.30281037400156, -80.73872110339664},
	"Hawthorn":                     {35.31155799537089, -80.7274596770149},
	"Hawthorn Hall":                {35.31155799537089, -80.7274596770149},
	"Hickory":                      {35.309225275826364, -80.72899299312088},
	"Hickory Hall":                 {35.309225275826364, -80.72899299312088},
	"Holshouser":                   {35.30213753161986, -80.7360752926913},
	"Holshouser Hall":              {35.30213753161986, -80.7360752926913},
	"Hunt":                         {35.3014602722455, -80.73644891943515},
	"Hunt Hall":                    {35.3014602722455, -80.73644891943515},
	"Irwin Belk Track":             {35.305507192658936, -80.73810898581563},
	"Jerry Richardson Stadium":     {35.31054494321856, -80.74010401783029},
	"Kennedy":                      {35.30600031437926, -80.73094518911772},
	"King Hall":                    {35.30511359509126, -80.73253861857071},
	"Klein Hall":                   {35.30851294005984, -80.73018481393747},
	"Landingham Glen":              {35.30667940749726, -80.72799851609348},
	"Laurel":                       {35.30276133091521, -80.73656945127522},
	"Laurel Hall":                  {35.30276133091521, -80.73656945127522},
	"Levine":                       {35.30272860100916, -80.73306290708054},
	"Levine Hall":                  {35.30272860100916, -80.73306290708054},
	"Library":                      {35.305733192943606, -80.73191008154319},
	"Light Rail":                   {35.312271, -80.733932},
	"Lot 5":                        {35.307518384320645, -80.72715791288293},
	"Lot 6":                        {35.30942413585608, -80.72568656644484},
	"Lot 8":                        {35.30020432057936, -80.73633977902806},
	"Lot 11":                       {35.31039726866363, -80.73070933223568},
	"Lot 12":                       {35.31143672335098, -80.72880617146247},
	"Lot 16":                       {35.30775753460412, -80.73014482348113},
	"Lot 20":                       {35.310280919371145, -80.73269809941411},
	"Lot 23":                       {35.31059397821839, -80.74150320037988},
	"Lot 25":                       {35.313003277048054, -80.73270544263463},
	"Lot 27":                       {35.30182360093606, -80.74034922262658},
	"Lot 101":                      {35.29754272038614, -80.73655862435236},
	"Lynch":                        {35.31028185878501, -80.73372955747121},
	"Lynch Hall":                   {35.31028185878501, -80.73372955747121},
	"Maple":                        {35.309064255419386, -80.73129429277893},
	"Maple Hall":                   {35.309064255419386, -80.73129429277893},
	"Marriott":                     {35.3102290364054, -80.7447686755496},
	"Martin":                       {35.31002608542147, -80.72757204765246},
	"Martin Hall":                  {35.31002608542147, -80.72757204765246},
	"Mary Alexander Rd":            {35.308122636361915, -80.72934252700448},
	"McEniry":                      {35.3070911050101, -80.73002298692892},
	"McKnight Hall":                {35.30503348462083, -80.73333572672267},
	"Memorial Hall":                {35.30382515486322, -80.735849508953},
	"Miltimore":                    {35.31148972816667, -80.7355167891963},
	"North Deck":                   {35.31301726227786, -80.73129360068769},
	"Oak":                          {35.30912311745998, -80.73223600721032},
	"Oak Hall":                     {35.30912311745998, -80.73223600721032},
	"Off Campus":                   {35.30150209166273, -80.7313306756337},
	"PPS":                          {35.312073, -80.730443},
	"PORTAL":                       {35.3116833740611, -80.74299943842078},
	"Pine":                         {35.30935844112632, -80.7310961835919},
	"Pine Hall":                    {35.30935844112632, -80.7310961835919},
	"Police and Public Safety":     {35.312073, -80.730443},
	"Prospector":                   {35.30683528127859, -80.7309218166091},
	"Reese":                        {35.30469294870569, -80.7325012910597},
	"Robinson":                     {35.30386486692623, -80.72993239136733},
	"Robinson Hall":                {35.30386486692623, -80.72993239136733},
	"Rowe":                         {35.30466694963474, -80.7307608143192},
	"SAC":                          {35.30638812746262, -80.73438037291629},
	"Sanford":                      {35.30302555985922, -80.73352501718196},
	"Sanford Hall":                 {35.30302555985922, -80.73352501718196},
	"Science Building":             {35.30851294005984, -80.73018481393747},
	"Scott":                        {35.30174954584869, -80.73538506464213},
	"Scott Hall":                   {35.30174954584869, -80.73538506464213},
	"Smith":                        {35.30694960986669, -80.73156517106565},
	"South Deck":                   {35.30068782330028, -80.73616031782448},
	"South Village Deck":           {35.30068782330028, -80.73616031782448},
	"SOVI":                         {35.30291844251696, -80.73486179559463},
	"Storrs":                       {35.30465074989727, -80.72897746927394},
	"Student Activity Center":      {35.30638812746262, -80.73438037291629},
	"Student Health":               {35.310608027022, -80.72961644427237},
	"Student Health Center":        {35.310608027022, -80.72961644427237},
	"Student Union":                {35.308651, -80.733818},
	"Sycamore":                     {35.30886506841222, -80.72901495570946},
	"Sycamore Hall":                {35.30886506841222, -80.72901495570946},
	"Tennis Courts":                {35.30738168923848, -80.73738195486152},
	"UREC":                         {35.30821410701689, -80.73510410052084},
	"Union Deck":                   {35.309193, -80.735209},
	"University Recreation Center":  {35.30821410701689, -80.73510410052084},
	"Van Landingham Glen":          {35.30667940749726, -80.72799851609348},
	"Wallis Hall":                  {35.3115037345374, -80.73378354202511},
	"Wells Fargo Field":            {35.3069478089329, -80.74036361643392},
	"West Deck":                    {35.30552751362334, -80.73665977766677},
	"Wilson Hall":                  {35.30284667088313, -80.73423262299436},
	"Winningham":                   {35.30516183198022, -80.73039960024325},
	"Witherspoon":                  {35.31086527159319, -80.73227311582812},
	"Woodward":                     {35.30752604403662, -80.73538140374912},
	"Woodward Hall":                {35.30756068679362, -80.7353930074827},
}

// DefaultCoordinates is the campus center, used when a location is unknown.
var DefaultCoordinates = Coordinates{35.30633448460147, -80.73340059330613}

var sortedLocationKeys []string

func init() {
	sortedLocationKeys = make([]string, 0, len(locationCoordinates))
	for k := range locationCoordinates {
		sortedLocationKeys = append(sortedLocationKeys, k)
	}
	// Deterministic substring fallback; map iteration order is not.
	sort.Strings(sortedLocationKeys)
}

// CoordinatesFor resolves a free-text police-log location. Exact match first,
// then the first table key contained in the string, then the campus center.
func CoordinatesFor(location string) Coordinates {
	if c, ok := locationCoordinates[location]; ok {
		return c
	}

	for _, key := range sortedLocationKeys {
		if strings.Contains(location, key) {
			return locationCoordinates[key]
		}
	}

	return DefaultCoordinates
}
