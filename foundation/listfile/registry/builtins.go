// File: builtins.go
// Title: Builtin Command Table
// Description: Argument specifications of the builtin listfile commands.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Builtin TCOL objects and methods
// - 2026-10-18 v0.2.0: Builtin listfile command specifications

package registry

// kwargs maps each keyword to a zero-or-more positional run
func kwargs(names ...string) map[string]Grammar {
	out := make(map[string]Grammar, len(names))
	for _, name := range names {
		out[name] = Positional(ZeroOrMore)
	}
	return out
}

// with adds explicit keyword grammars to a kwargs map
func with(base map[string]Grammar, extra map[string]Grammar) map[string]Grammar {
	for name, g := range extra {
		base[name] = g
	}
	return base
}

var findFlags = []string{
	"CMAKE_FIND_ROOT_PATH_BOTH", "NO_CMAKE_ENVIRONMENT_PATH", "NO_CMAKE_FIND_ROOT_PATH",
	"NO_CMAKE_PATH", "NO_CMAKE_SYSTEM_PATH", "NO_DEFAULT_PATH", "NO_PACKAGE_ROOT_PATH",
	"NO_SYSTEM_ENVIRONMENT_PATH", "ONLY_CMAKE_FIND_ROOT_PATH", "REQUIRED",
}

var findKwargs = []string{"DOC", "ENV", "HINTS", "NAMES", "PATHS", "PATH_SUFFIXES"}

// builtinSpecs returns the table driven commands
func builtinSpecs() []*Spec {
	return []*Spec{
		{Name: "add_compile_definitions", Pargs: ZeroOrMore},
		{Name: "add_compile_options", Pargs: ZeroOrMore},
		{
			Name:   "add_custom_target",
			Pargs:  Exact(1),
			Flags:  []string{"ALL", "VERBATIM", "USES_TERMINAL", "COMMAND_EXPAND_LISTS"},
			Kwargs: with(kwargs("COMMAND", "DEPENDS", "BYPRODUCTS", "SOURCES"), map[string]Grammar{
				"COMMENT":           Positional(Exact(1)),
				"WORKING_DIRECTORY": Positional(Exact(1)),
				"JOB_POOL":          Positional(Exact(1)),
			}),
		},
		{Name: "add_definitions", Pargs: ZeroOrMore},
		{Name: "add_dependencies", Pargs: OneOrMore},
		{Name: "add_subdirectory", Pargs: OneOrMore, Flags: []string{"EXCLUDE_FROM_ALL", "SYSTEM"}},
		{
			Name:   "add_test",
			Pargs:  ZeroOrMore,
			Flags:  []string{"COMMAND_EXPAND_LISTS"},
			Kwargs: with(kwargs("COMMAND", "CONFIGURATIONS"), map[string]Grammar{
				"NAME":              Positional(Exact(1)),
				"WORKING_DIRECTORY": Positional(Exact(1)),
			}),
		},
		{Name: "cmake_host_system_information", Pargs: ZeroOrMore, Kwargs: kwargs("QUERY", "RESULT")},
		{
			Name:   "cmake_minimum_required",
			Pargs:  ZeroOrMore,
			Flags:  []string{"FATAL_ERROR"},
			Kwargs: map[string]Grammar{"VERSION": Positional(Exact(1))},
		},
		{
			Name:   "cmake_parse_arguments",
			Pargs:  Min(4),
			Kwargs: map[string]Grammar{
				"PARSE_ARGV": Positional(Exact(5)),
			},
		},
		{
			Name:   "cmake_policy",
			Pargs:  ZeroOrMore,
			Flags:  []string{"PUSH", "POP"},
			Kwargs: map[string]Grammar{
				"VERSION": Positional(Exact(1)),
				"SET":     Positional(Exact(2), "OLD", "NEW"),
				"GET":     Positional(Exact(2)),
			},
		},
		{
			Name:   "configure_file",
			Pargs:  Exact(2),
			Flags:  []string{"@ONLY", "COPYONLY", "ESCAPE_QUOTES", "NO_SOURCE_PERMISSIONS", "USE_SOURCE_PERMISSIONS"},
			Kwargs: map[string]Grammar{
				"NEWLINE_STYLE":    Positional(Exact(1), "UNIX", "DOS", "WIN32", "LF", "CRLF"),
				"FILE_PERMISSIONS": Positional(OneOrMore),
			},
		},
		{
			Name:  "define_property",
			Pargs: ZeroOrMore,
			Flags: []string{"CACHED_VARIABLE", "DIRECTORY", "GLOBAL", "INHERITED", "SOURCE",
				"TARGET", "TEST", "VARIABLE"},
			Kwargs: kwargs("BRIEF_DOCS", "FULL_DOCS", "PROPERTY"),
		},
		{Name: "enable_language", Pargs: OneOrMore, Flags: []string{"OPTIONAL"}},
		{Name: "enable_testing", Pargs: Exact(0)},
		{
			Name:  "execute_process",
			Pargs: ZeroOrMore,
			Flags: []string{"ERROR_QUIET", "ERROR_STRIP_TRAILING_WHITESPACE", "OUTPUT_QUIET",
				"OUTPUT_STRIP_TRAILING_WHITESPACE", "ECHO_OUTPUT_VARIABLE", "ECHO_ERROR_VARIABLE"},
			Kwargs: with(kwargs("COMMAND"), map[string]Grammar{
				"WORKING_DIRECTORY":      Positional(Exact(1)),
				"TIMEOUT":                Positional(Exact(1)),
				"RESULT_VARIABLE":        Positional(Exact(1)),
				"RESULTS_VARIABLE":       Positional(Exact(1)),
				"OUTPUT_VARIABLE":        Positional(Exact(1)),
				"ERROR_VARIABLE":         Positional(Exact(1)),
				"INPUT_FILE":             Positional(Exact(1)),
				"OUTPUT_FILE":            Positional(Exact(1)),
				"ERROR_FILE":             Positional(Exact(1)),
				"COMMAND_ECHO":           Positional(Exact(1), "STDERR", "STDOUT", "NONE"),
				"ENCODING":               Positional(Exact(1)),
				"COMMAND_ERROR_IS_FATAL": Positional(Exact(1), "ANY", "LAST"),
			}),
		},
		{Name: "find_file", Pargs: ZeroOrMore, Flags: findFlags, Kwargs: kwargs(findKwargs...)},
		{Name: "find_library", Pargs: ZeroOrMore, Flags: append([]string{"NAMES_PER_DIR"}, findFlags...), Kwargs: kwargs(findKwargs...)},
		{
			Name:  "find_package",
			Pargs: ZeroOrMore,
			Flags: []string{"EXACT", "MODULE", "REQUIRED", "QUIET", "NO_POLICY_SCOPE", "CONFIG",
				"NO_MODULE", "GLOBAL"},
			Kwargs: kwargs("COMPONENTS", "OPTIONAL_COMPONENTS", "NAMES", "CONFIGS", "HINTS",
				"PATHS", "PATH_SUFFIXES"),
		},
		{Name: "find_path", Pargs: ZeroOrMore, Flags: findFlags, Kwargs: kwargs(findKwargs...)},
		{Name: "find_program", Pargs: ZeroOrMore, Flags: append([]string{"NAMES_PER_DIR"}, findFlags...), Kwargs: kwargs(findKwargs...)},
		{
			Name:   "foreach",
			Pargs:  OneOrMore,
			Kwargs: map[string]Grammar{
				"IN":        Positional(ZeroOrMore),
				"LISTS":     Positional(ZeroOrMore),
				"ITEMS":     Positional(ZeroOrMore),
				"ZIP_LISTS": Positional(ZeroOrMore),
				"RANGE":     Positional(OneOrMore),
			},
		},
		{Name: "function", Pargs: OneOrMore},
		{Name: "get_directory_property", Pargs: ZeroOrMore, Kwargs: kwargs("DIRECTORY")},
		{Name: "get_filename_component", Pargs: Min(3), Flags: []string{"DIRECTORY", "NAME",
			"EXT", "NAME_WE", "LAST_EXT", "NAME_WLE", "PATH", "ABSOLUTE", "REALPATH", "PROGRAM", "CACHE"},
			Kwargs: kwargs("BASE_DIR", "PROGRAM_ARGS")},
		{
			Name:   "get_property",
			Pargs:  ZeroOrMore,
			Flags:  []string{"BRIEF_DOCS", "DEFINED", "FULL_DOCS", "GLOBAL", "SET", "VARIABLE"},
			Kwargs: kwargs("CACHE", "DIRECTORY", "PROPERTY", "SOURCE", "TARGET", "TEST", "INSTALL"),
		},
		{Name: "get_target_property", Pargs: Exact(3)},
		{Name: "include", Pargs: ZeroOrMore, Flags: []string{"NO_POLICY_SCOPE", "OPTIONAL"},
			Kwargs: map[string]Grammar{"RESULT_VARIABLE": Positional(Exact(1))}},
		{Name: "include_directories", Pargs: ZeroOrMore, Flags: []string{"AFTER", "BEFORE", "SYSTEM"}},
		{Name: "link_directories", Pargs: ZeroOrMore, Flags: []string{"AFTER", "BEFORE"}},
		{Name: "link_libraries", Pargs: ZeroOrMore},
		{
			Name:   "list",
			Pargs:  ZeroOrMore,
			Kwargs: kwargs("APPEND", "FILTER", "FIND", "GET", "INSERT", "JOIN", "LENGTH", "POP_BACK",
				"POP_FRONT", "PREPEND", "REMOVE_AT", "REMOVE_DUPLICATES", "REMOVE_ITEM", "REVERSE",
				"SORT", "SUBLIST", "TRANSFORM"),
		},
		{Name: "macro", Pargs: OneOrMore},
		{Name: "mark_as_advanced", Pargs: ZeroOrMore, Flags: []string{"CLEAR", "FORCE"}},
		{
			Name:   "message",
			Pargs:  ZeroOrMore,
			Kwargs: kwargs("AUTHOR_WARNING", "CHECK_FAIL", "CHECK_PASS", "CHECK_START", "DEBUG",
				"DEPRECATION", "FATAL_ERROR", "NOTICE", "SEND_ERROR", "STATUS", "TRACE", "VERBOSE",
				"WARNING"),
		},
		{Name: "option", Pargs: Min(2)},
		{
			Name:   "project",
			Pargs:  ZeroOrMore,
			Kwargs: map[string]Grammar{
				"LANGUAGES":    Positional(ZeroOrMore),
				"VERSION":      Positional(Exact(1)),
				"DESCRIPTION":  Positional(Exact(1)),
				"HOMEPAGE_URL": Positional(Exact(1)),
			},
		},
		{Name: "return", Pargs: ZeroOrMore, Kwargs: kwargs("PROPAGATE")},
		{Name: "set_directory_properties", Pargs: ZeroOrMore, Kwargs: kwargs("PROPERTIES")},
		{
			Name:   "set_property",
			Pargs:  ZeroOrMore,
			Flags:  []string{"APPEND", "APPEND_STRING", "GLOBAL"},
			Kwargs: kwargs("CACHE", "DIRECTORY", "PROPERTY", "SOURCE", "TARGET", "TEST", "INSTALL"),
		},
		{Name: "set_source_files_properties", Pargs: ZeroOrMore, Kwargs: kwargs("DIRECTORY", "TARGET_DIRECTORY", "PROPERTIES")},
		{Name: "set_target_properties", Pargs: ZeroOrMore, Kwargs: kwargs("PROPERTIES")},
		{Name: "set_tests_properties", Pargs: ZeroOrMore, Kwargs: kwargs("PROPERTIES")},
		{
			Name:   "string",
			Pargs:  ZeroOrMore,
			Flags:  []string{"@ONLY", "ESCAPE_QUOTES", "REVERSE", "UTC"},
			Kwargs: kwargs("ALPHABET", "APPEND", "ASCII", "COMPARE", "CONCAT", "CONFIGURE", "FIND",
				"GENEX_STRIP", "JOIN", "LENGTH", "MAKE_C_IDENTIFIER", "MD5", "PREPEND", "RANDOM",
				"RANDOM_SEED", "REGEX", "REPEAT", "REPLACE", "SHA1", "SHA256", "SHA384", "SHA512",
				"STRIP", "SUBSTRING", "TIMESTAMP", "TOLOWER", "TOUPPER", "UUID"),
		},
		{Name: "target_compile_definitions", Pargs: Exact(1), Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE")},
		{Name: "target_compile_features", Pargs: Exact(1), Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE")},
		{Name: "target_compile_options", Pargs: Exact(1), Flags: []string{"BEFORE"}, Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE")},
		{Name: "target_include_directories", Pargs: Exact(1), Flags: []string{"SYSTEM", "AFTER", "BEFORE"}, Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE")},
		{Name: "target_link_directories", Pargs: Exact(1), Flags: []string{"BEFORE"}, Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE")},
		{
			Name:   "target_link_libraries",
			Pargs:  Exact(1),
			Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE", "LINK_PRIVATE", "LINK_PUBLIC",
				"LINK_INTERFACE_LIBRARIES"),
		},
		{Name: "target_link_options", Pargs: Exact(1), Flags: []string{"BEFORE"}, Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE")},
		{Name: "target_sources", Pargs: Exact(1), Kwargs: kwargs("INTERFACE", "PUBLIC", "PRIVATE", "FILE_SET", "TYPE", "BASE_DIRS", "FILES")},
		{
			Name:   "try_compile",
			Pargs:  ZeroOrMore,
			Kwargs: kwargs("CMAKE_FLAGS", "COMPILE_DEFINITIONS", "COPY_FILE", "LINK_LIBRARIES", "OUTPUT_VARIABLE", "RESULT_VAR", "SOURCES"),
		},
		{
			Name:   "try_run",
			Pargs:  ZeroOrMore,
			Kwargs: kwargs("ARGS", "CMAKE_FLAGS", "COMPILE_DEFINITIONS", "COMPILE_OUTPUT_VARIABLE",
				"OUTPUT_VARIABLE", "RUN_OUTPUT_VARIABLE"),
		},
		{Name: "unset", Pargs: Exact(1), Flags: []string{"CACHE", "PARENT_SCOPE"}},
	}
}

// builtinCustom returns the commands parsed by hand written functions
func builtinCustom() map[string]Grammar {
	custom := map[string]Grammar{
		"install":            Custom(dispatchForm("install", installForms())),
		"file":               Custom(dispatchForm("file", fileForms())),
		"add_library":        Custom(parseAddTarget([]string{"STATIC", "SHARED", "MODULE", "OBJECT", "INTERFACE", "UNKNOWN", "IMPORTED", "GLOBAL", "ALIAS", "EXCLUDE_FROM_ALL"})),
		"add_executable":     Custom(parseAddTarget([]string{"WIN32", "MACOSX_BUNDLE", "EXCLUDE_FROM_ALL", "IMPORTED", "GLOBAL", "ALIAS"})),
		"set":                Custom(parseSet),
		"add_custom_command": Standard(&Spec{
			Name:  "add_custom_command",
			Pargs: ZeroOrMore,
			Flags: []string{"APPEND", "VERBATIM", "PRE_BUILD", "PRE_LINK", "POST_BUILD",
				"USES_TERMINAL", "COMMAND_EXPAND_LISTS"},
			Kwargs: map[string]Grammar{
				"COMMAND":           Positional(ZeroOrMore),
				"COMMENT":           Positional(ZeroOrMore),
				"DEPENDS":           Positional(ZeroOrMore),
				"BYPRODUCTS":        Positional(ZeroOrMore),
				"IMPLICIT_DEPENDS":  Custom(parsePositionalTuples(2)),
				"MAIN_DEPENDENCY":   Positional(Exact(1)),
				"OUTPUT":            Positional(OneOrMore),
				"TARGET":            Positional(Exact(1)),
				"WORKING_DIRECTORY": Positional(Exact(1)),
				"DEPFILE":           Positional(Exact(1)),
				"JOB_POOL":          Positional(Exact(1)),
			},
		}),
	}
	for _, name := range []string{"if", "elseif", "while"} {
		custom[name] = Custom(ParseConditional)
	}
	return custom
}
