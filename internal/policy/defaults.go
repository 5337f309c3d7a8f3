package policy

// defaultIgnoredDirectories lists directory names that are never descended into:
// version-control metadata, dependency and build caches, and editor metadata.
// The set is fixed at process start; exclusion globs can extend but never shrink it.
var defaultIgnoredDirectories = map[string]struct{}{
	".git": {}, ".hg": {}, ".svn": {},
	"__pycache__": {}, ".pytest_cache": {}, ".mypy_cache": {}, ".ruff_cache": {},
	".ipynb_checkpoints": {},
	"node_modules":       {},
	"venv":               {}, ".venv": {}, "env": {},
	"dist": {}, "build": {}, "target": {}, "out": {},
	".idea": {}, ".vscode": {},
}

// defaultIgnoredFiles lists bare file names that are always skipped, including the
// default output file so repeated runs never embed their own snapshot.
var defaultIgnoredFiles = map[string]struct{}{
	".DS_Store":         {},
	"package-lock.json": {}, "yarn.lock": {}, "pnpm-lock.yaml": {},
	"poetry.lock": {}, "Pipfile.lock": {},
	"prompt_context.md": {},
}

// defaultExcludedExtensions lists extensions of common binary, media, archive,
// model, and data formats whose content is never embedded.
var defaultExcludedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".ico": {},
	".pdf": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".7z": {}, ".rar": {},
	".mp3": {}, ".wav": {}, ".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {},
	".parquet": {}, ".feather": {}, ".arrow": {}, ".orc": {},
	".npz": {}, ".npy": {},
	".pt": {}, ".pth": {}, ".onnx": {},
	".pkl": {}, ".pickle": {},
	".db": {}, ".sqlite": {}, ".sqlite3": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {},
}
