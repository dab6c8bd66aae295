package atome

// Config is a configuration mapping describing one node.
type Config map[string]any

// Reserved keys interpreted by the factory rather than the particle
// registry.
const (
	KeyID       = "id"
	KeyParent   = "parent"
	KeyText     = "text"
	KeyContent  = "content"
	KeyTag      = "tag"
	KeyUnits    = "units"
	KeyChildren = "children"
)

var reserved = map[string]bool{
	KeyID:       true,
	KeyParent:   true,
	KeyText:     true,
	KeyContent:  true,
	KeyTag:      true,
	KeyUnits:    true,
	KeyChildren: true,
}

// IsReserved reports whether key is handled by the factory directly.
func IsReserved(key string) bool {
	return reserved[key]
}

// Clone returns a shallow copy of c. The css and attrs maps are copied one
// level deep so merges do not alias the original.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		switch k {
		case "css", "attrs":
			if m, ok := v.(map[string]any); ok {
				cp := make(map[string]any, len(m))
				for mk, mv := range m {
					cp[mk] = mv
				}
				v = cp
			}
		}
		out[k] = v
	}
	return out
}

// Merge returns base overlaid with over. The css and attrs maps are merged
// key by key; css text strings are concatenated.
func Merge(base, over Config) Config {
	out := base.Clone()
	for k, v := range over {
		switch k {
		case "css":
			out[k] = mergeCSS(out[k], v)
		case "attrs":
			out[k] = mergeMaps(out[k], v)
		default:
			out[k] = v
		}
	}
	return out
}

func mergeCSS(base, over any) any {
	bs, bok := base.(string)
	ovs, ook := over.(string)
	if bok && ook {
		return bs + ";" + ovs
	}
	if _, ok := base.(map[string]any); ok {
		if _, ok := over.(map[string]any); ok {
			return mergeMaps(base, over)
		}
	}
	if over != nil {
		return over
	}
	return base
}

func mergeMaps(base, over any) any {
	bm, _ := base.(map[string]any)
	om, ok := over.(map[string]any)
	if !ok {
		if over != nil {
			return over
		}
		return base
	}
	out := make(map[string]any, len(bm)+len(om))
	for k, v := range bm {
		out[k] = v
	}
	for k, v := range om {
		out[k] = v
	}
	return out
}
