package lemma

import "strings"

var nounExceptions = pairs(`children child  men man  women woman  mice mouse  feet foot  teeth tooth
	geese goose  lives life  wives wife  knives knife  leaves leaf  wolves wolf  halves half
	people people  news news  series series  species species  data data  media media`)

var verbExceptions = pairs(`is be  are be  am be  was be  were be  been be  being be
	has have  had have  having have  does do  did do  done do  doing do  going go  went go  gone go
	made make  got get  gotten get  knew know  known know  thought think  saw see  seen see  seeing see
	said say  came come  took take  taken take  gave give  given give  felt feel  found find
	told tell  left leave  kept keep  began begin  begun begin  ran run  brought bring
	wrote write  written write  sat sit  stood stand  lost lose  paid pay  met meet  spoke speak
	spoken speak  spent spend  grew grow  grown grow  won win  bought buy  sent send  ate eat
	eaten eat  heard hear  died die  dying die  lied lie  lying lie  tied tie  used use  using use
	fell fall  fallen fall  flew fly  flown fly  broke break  broken break  chose choose  chosen choose
	drove drive  driven drive  forgot forget  forgotten forget  sold sell  taught teach  caught catch
	fought fight  slept sleep  built build  understood understand  wore wear  worn wear
	agreed agree  disagreed disagree  freed free  decreed decree  guaranteed guarantee  refereed referee
	fed feed  sped speed  bled bleed  bred breed`)

var adjExceptions = pairs(`better good  best good  worse bad  worst bad  less little  least little
	further far  furthest far  farther far  farthest far`)

func pairs(s string) map[string]string {
	f := strings.Fields(s)
	m := make(map[string]string, len(f)/2)
	for i := 0; i+1 < len(f); i += 2 {
		m[f[i]] = f[i+1]
	}
	return m
}
