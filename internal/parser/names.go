package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const javaObject = "java.lang.Object"

// jdkPackages lists well-known platform types per package. Only these are
// resolved through java.lang or on-demand imports of platform packages.
var jdkPackages = map[string][]string{
	"java.lang": {
		"Appendable", "ArithmeticException", "ArrayIndexOutOfBoundsException", "AssertionError",
		"AutoCloseable", "Boolean", "Byte", "CharSequence", "Character", "Class", "ClassCastException",
		"ClassLoader", "ClassNotFoundException", "CloneNotSupportedException", "Cloneable", "Comparable",
		"Deprecated", "Double", "Enum", "Error", "Exception", "Float", "FunctionalInterface",
		"IllegalAccessException", "IllegalArgumentException", "IllegalStateException",
		"IndexOutOfBoundsException", "InstantiationException", "Integer", "InterruptedException",
		"Iterable", "Long", "Math", "Module", "NoSuchFieldException", "NoSuchMethodException",
		"NullPointerException", "Number", "NumberFormatException", "Object", "OutOfMemoryError",
		"Override", "Package", "Process", "ProcessBuilder", "Readable", "Record",
		"ReflectiveOperationException", "Runnable", "Runtime", "RuntimeException", "SafeVarargs",
		"SecurityException", "Short", "StackOverflowError", "StackTraceElement", "String",
		"StringBuffer", "StringBuilder", "SuppressWarnings", "System", "Thread", "ThreadLocal",
		"Throwable", "UnsupportedOperationException", "Void",
	},
	"java.util": {
		"AbstractList", "AbstractMap", "ArrayDeque", "ArrayList", "Arrays", "Base64", "BitSet",
		"Calendar", "Collection", "Collections", "Comparator", "ConcurrentModificationException",
		"Currency", "Date", "Deque", "EnumMap", "EnumSet", "Enumeration", "HashMap", "HashSet",
		"Hashtable", "Iterator", "LinkedHashMap", "LinkedHashSet", "LinkedList", "List",
		"ListIterator", "Locale", "Map", "NavigableMap", "NavigableSet", "NoSuchElementException",
		"Objects", "Optional", "OptionalDouble", "OptionalInt", "OptionalLong", "PriorityQueue",
		"Properties", "Queue", "Random", "Scanner", "Set", "SortedMap", "SortedSet", "Spliterator",
		"Stack", "StringJoiner", "TimeZone", "TreeMap", "TreeSet", "UUID", "Vector",
	},
	"java.util.function": {
		"BiConsumer", "BiFunction", "BiPredicate", "BinaryOperator", "BooleanSupplier", "Consumer",
		"DoubleFunction", "DoubleSupplier", "Function", "IntBinaryOperator", "IntConsumer",
		"IntFunction", "IntPredicate", "IntSupplier", "IntUnaryOperator", "LongFunction",
		"LongSupplier", "ObjIntConsumer", "Predicate", "Supplier", "ToDoubleFunction",
		"ToIntFunction", "ToLongFunction", "UnaryOperator",
	},
	"java.util.concurrent": {
		"BlockingQueue", "Callable", "CompletableFuture", "CompletionStage", "ConcurrentHashMap",
		"ConcurrentMap", "CopyOnWriteArrayList", "CountDownLatch", "ExecutionException", "Executor",
		"ExecutorService", "Executors", "Future", "ScheduledExecutorService", "ThreadFactory",
		"TimeUnit", "TimeoutException",
	},
	"java.util.stream": {
		"Collector", "Collectors", "DoubleStream", "IntStream", "LongStream", "Stream",
	},
	"java.io": {
		"BufferedReader", "BufferedWriter", "ByteArrayInputStream", "ByteArrayOutputStream",
		"Closeable", "DataInput", "DataOutput", "EOFException", "File", "FileInputStream",
		"FileNotFoundException", "FileOutputStream", "Flushable", "IOException", "InputStream",
		"InputStreamReader", "ObjectInputStream", "ObjectOutputStream", "OutputStream",
		"OutputStreamWriter", "PrintStream", "PrintWriter", "Reader", "Serializable",
		"UncheckedIOException", "Writer",
	},
	"java.nio": {
		"Buffer", "ByteBuffer", "ByteOrder", "CharBuffer",
	},
	"java.nio.charset": {
		"Charset", "StandardCharsets",
	},
	"java.nio.file": {
		"DirectoryStream", "FileSystem", "FileSystems", "Files", "NoSuchFileException", "OpenOption",
		"Path", "Paths", "StandardOpenOption", "WatchService",
	},
	"java.math": {
		"BigDecimal", "BigInteger", "MathContext", "RoundingMode",
	},
	"java.net": {
		"InetAddress", "MalformedURLException", "Socket", "URI", "URISyntaxException", "URL",
		"URLConnection",
	},
	"java.time": {
		"Clock", "DayOfWeek", "Duration", "Instant", "LocalDate", "LocalDateTime", "LocalTime",
		"Month", "OffsetDateTime", "Period", "Year", "YearMonth", "ZoneId", "ZoneOffset",
		"ZonedDateTime",
	},
}

var jdkTypes = func() map[string]map[string]bool {
	index := make(map[string]map[string]bool, len(jdkPackages))
	for pkg, names := range jdkPackages {
		set := make(map[string]bool, len(names))
		for _, name := range names {
			set[name] = true
		}
		index[pkg] = set
	}
	return index
}()

// jdkType reports whether pkg.name is a known platform type
func jdkType(pkg, name string) bool {
	return jdkTypes[pkg][name]
}

// jdkInterfaceMethods holds the abstract methods of platform interfaces that
// are commonly extended, so their methods can be implemented without the JDK
// sources on the source path.
var jdkInterfaceMethods = map[string][]jdkMethod{
	"java.lang.AutoCloseable":            {{name: "close", ret: "void", throws: []string{"java.lang.Exception"}}},
	"java.io.Closeable":                  {{name: "close", ret: "void", throws: []string{"java.io.IOException"}}},
	"java.io.Flushable":                  {{name: "flush", ret: "void", throws: []string{"java.io.IOException"}}},
	"java.lang.Runnable":                 {{name: "run", ret: "void"}},
	"java.lang.Comparable":               {{name: "compareTo", ret: "int", params: []string{javaObject}}},
	"java.util.concurrent.Callable":      {{name: "call", ret: javaObject, throws: []string{"java.lang.Exception"}}},
	"java.util.function.Supplier":        {{name: "get", ret: javaObject}},
	"java.util.function.Consumer":        {{name: "accept", ret: "void", params: []string{javaObject}}},
	"java.util.function.Function":        {{name: "apply", ret: javaObject, params: []string{javaObject}}},
	"java.util.function.Predicate":       {{name: "test", ret: "boolean", params: []string{javaObject}}},
	"java.util.function.BiFunction":      {{name: "apply", ret: javaObject, params: []string{javaObject, javaObject}}},
	"java.util.function.BooleanSupplier": {{name: "getAsBoolean", ret: "boolean"}},
	"java.util.function.IntSupplier":     {{name: "getAsInt", ret: "int"}},
	"java.lang.Cloneable":                nil,
	"java.io.Serializable":               nil,
}

type jdkMethod struct {
	name   string
	ret    string
	params []string
	throws []string
}

// looksLikeType guesses whether the last segment of a dotted name is a type
// rather than a package, following the upper-case type naming convention
func looksLikeType(name string) bool {
	last := name[strings.LastIndex(name, ".")+1:]
	r, _ := utf8.DecodeRuneInString(last)
	return unicode.IsUpper(r)
}
